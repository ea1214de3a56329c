package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raywall/event-service/pkg/events"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrDecode indica corpo ou parâmetros inválidos na requisição
var ErrDecode = errors.New("invalid request")

// EventService é o que os handlers precisam do events.Service
type EventService interface {
	List(ctx context.Context, params events.QueryParams) ([]events.Event, error)
	Create(ctx context.Context, e events.Event) (string, error)
	Get(ctx context.Context, id string) (events.Event, error)
	Delete(ctx context.Context, id string) (string, error)
	UpdateTitle(ctx context.Context, id, title string) (string, error)
}

// Handler traduz HTTP para chamadas ao EventService.
type Handler struct {
	svc EventService
}

func New(svc EventService) *Handler {
	return &Handler{svc: svc}
}

// NewRouter registra as rotas de eventos e o health check.
func NewRouter(svc EventService, mws ...mux.MiddlewareFunc) *mux.Router {
	h := New(svc)

	// ids podem conter "/" codificado (%2F); o match usa o path codificado
	r := mux.NewRouter().UseEncodedPath()
	r.HandleFunc("/health", health).Methods(http.MethodGet)

	r.HandleFunc("/events", h.List).Methods(http.MethodGet)
	r.HandleFunc("/events", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/events/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/events/{id}/title", h.UpdateTitle).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": true, "message": "route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": true, "message": "method not allowed"})
	})

	for _, mw := range mws {
		r.Use(mw)
	}
	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List GET /events?title=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := decodeQuery(r)

	items, err := h.svc.List(r.Context(), params)
	if err != nil && !errors.Is(err, events.ErrNoItems) {
		fail(w, r, err)
		return
	}
	if items == nil {
		items = []events.Event{}
	}
	ok(w, "events", items)
}

// Create POST /events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	e, err := decodeEvent(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	msg, err := h.svc.Create(r.Context(), e)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, "message", msg)
}

// Get GET /events/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, "event", e)
}

// Delete DELETE /events/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	msg, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, "message", msg)
}

// UpdateTitle PUT /events/{id}/title. A chave da resposta é "event" mesmo
// sendo uma mensagem.
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	params, err := decodeTitle(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	msg, err := h.svc.UpdateTitle(r.Context(), id, params.Title)
	if err != nil {
		fail(w, r, err)
		return
	}
	ok(w, "event", msg)
}

func ok(w http.ResponseWriter, key string, payload any) {
	writeJSON(w, http.StatusOK, map[string]any{"error": false, key: payload})
}

// fail responde 400 para qualquer erro; NotFound, Conflict e falhas de I/O
// não são diferenciados no status.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())
	var storeErr *events.StoreError
	if errors.As(err, &storeErr) {
		logger.Error().Err(err).Str("op", storeErr.Op).Msg("store failure")
	} else {
		logger.Debug().Err(err).Msg("request rejected")
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{"error": true, "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("falha ao escrever resposta")
	}
}
