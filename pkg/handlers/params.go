package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/raywall/event-service/pkg/events"
)

// maxBodyBytes limita o corpo aceito em POST e PUT
const maxBodyBytes = 1 << 20

// Ponteiros distinguem campo ausente de string vazia; required só falha no nil.
type createBody struct {
	ID    *string `json:"id" validate:"required"`
	Title *string `json:"title" validate:"required"`
}

type titleBody struct {
	Title *string `json:"title" validate:"required"`
}

var validate = newValidator()

// newValidator reporta os campos pelo nome do JSON
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// pathID devolve o {id} da rota já decodificado
func pathID(r *http.Request) (string, error) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return id, nil
}

// decodeQuery lê o filtro opcional ?title=. Presente e vazio filtra por "".
func decodeQuery(r *http.Request) events.QueryParams {
	q := r.URL.Query()
	if !q.Has("title") {
		return events.QueryParams{}
	}
	title := q.Get("title")
	return events.QueryParams{Title: &title}
}

// decodeEvent exige id e title no corpo
func decodeEvent(r *http.Request) (events.Event, error) {
	var body createBody
	if err := decodeBody(r, &body); err != nil {
		return events.Event{}, err
	}
	if err := validateBody(r.Context(), &body); err != nil {
		return events.Event{}, err
	}
	return events.NewEvent(*body.ID, *body.Title), nil
}

func decodeTitle(r *http.Request) (events.PutTitleParams, error) {
	var body titleBody
	if err := decodeBody(r, &body); err != nil {
		return events.PutTitleParams{}, err
	}
	if err := validateBody(r.Context(), &body); err != nil {
		return events.PutTitleParams{}, err
	}
	return events.PutTitleParams{Title: *body.Title}, nil
}

// validateBody reporta o primeiro campo inválido, na ordem da struct
func validateBody(ctx context.Context, body any) error {
	err := validate.StructCtx(ctx, body)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: missing field `%s`", ErrDecode, fe.Field())
		}
		return fmt.Errorf("%w: invalid field `%s`", ErrDecode, fe.Field())
	}
	return fmt.Errorf("%w: %v", ErrDecode, err)
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrDecode)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrDecode)
		}
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
