package events

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/event-service/dyndb"
)

// repository concentra as chamadas ao dyndb; o Service só fala com ele.
type repository struct {
	store    dyndb.Store[Event]
	pageSize int32
}

// page busca uma página do scan a partir do cursor informado
func (r *repository) page(ctx context.Context, title *string, cursor map[string]types.AttributeValue) ([]Event, map[string]types.AttributeValue, error) {
	qb := r.store.Scan().Limit(r.pageSize).StartKey(cursor)
	if title != nil {
		qb = qb.FilterEqual(TitleAttr, *title)
	}
	return qb.Exec(ctx)
}

// exists usa Select=COUNT na consulta pela chave
func (r *repository) exists(ctx context.Context, id string) (bool, error) {
	n, err := r.store.Query().KeyEqual(HashKey, id).Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) find(ctx context.Context, id string) ([]Event, error) {
	items, _, err := r.store.Query().KeyEqual(HashKey, id).Exec(ctx)
	return items, err
}

func (r *repository) put(ctx context.Context, e Event) error {
	return r.store.Put(ctx, e)
}

func (r *repository) delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

func (r *repository) setTitle(ctx context.Context, id, title string) error {
	return r.store.Update(ctx, id, map[string]any{TitleAttr: title})
}
