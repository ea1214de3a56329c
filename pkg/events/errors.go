package events

import (
	"errors"
	"fmt"
)

var (
	// ErrNoItems indica que a primeira página do scan veio vazia e sem LastEvaluatedKey.
	ErrNoItems = errors.New("no items")
	// ErrConflict carrega a mensagem devolvida ao cliente.
	ErrConflict = errors.New("Event exists!")
	ErrNotFound = errors.New("event not found")
	ErrStore    = errors.New("event store failure")
)

// NotFoundError é devolvido quando o id não existe na tabela.
type NotFoundError struct {
	ID  string
	msg string
}

func notFound(format, id string) error {
	return &NotFoundError{ID: id, msg: fmt.Sprintf(format, id)}
}

func (e *NotFoundError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("Event does not exist for id: %s!", e.ID)
	}
	return e.msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoreError encapsula falhas de I/O do DynamoDB. A mensagem é a do erro
// original; Op só aparece nos logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
