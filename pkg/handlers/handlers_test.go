package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raywall/event-service/dyndb"
	"github.com/raywall/event-service/pkg/events"
	"github.com/raywall/event-service/pkg/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, pageSize int32) http.Handler {
	t.Helper()
	client := dyndb.NewMemoryClient(events.HashKey)
	store, err := dyndb.New(client, dyndb.TableConfig[events.Event]{TableName: "events"})
	require.NoError(t, err)
	return handlers.NewRouter(events.NewService(store, events.WithPageSize(pageSize)))
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestEventLifecycle(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, body := do(t, h, http.MethodPost, "/events", `{"id":"1","title":"A"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "message": "event added."}, body)

	code, body = do(t, h, http.MethodGet, "/events/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "event": map[string]any{"id": "1", "title": "A"}}, body)

	code, body = do(t, h, http.MethodPut, "/events/1/title", `{"title":"B"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "event": "Event title for id: 1 changed to B"}, body)

	code, body = do(t, h, http.MethodGet, "/events/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "1", "title": "B"}, body["event"])

	code, body = do(t, h, http.MethodDelete, "/events/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "message": "event for id: 1 deleted."}, body)

	code, body = do(t, h, http.MethodGet, "/events/1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, true, body["error"])
	assert.Equal(t, "Event does not exist for id:1!", body["message"])
}

func TestCreate_ConflictIs400(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, _ := do(t, h, http.MethodPost, "/events", `{"id":"1","title":"A"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, h, http.MethodPost, "/events", `{"id":"1","title":"A"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"error": true, "message": "Event exists!"}, body)
}

func TestDeleteAndUpdate_Missing(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, body := do(t, h, http.MethodDelete, "/events/9", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Event does not exist for id: 9!", body["message"])

	code, body = do(t, h, http.MethodPut, "/events/9/title", `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Event does not exist for id: 9!", body["message"])
}

func TestList(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 2)

	code, body := do(t, h, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "events": []any{}}, body)

	for _, payload := range []string{
		`{"id":"1","title":"A"}`,
		`{"id":"2","title":"B"}`,
		`{"id":"3","title":"A"}`,
		`{"id":"4","title":"C"}`,
		`{"id":"5","title":"A"}`,
	} {
		code, _ := do(t, h, http.MethodPost, "/events", payload)
		require.Equal(t, http.StatusOK, code)
	}

	_, body = do(t, h, http.MethodGet, "/events", "")
	assert.Len(t, body["events"], 5)

	_, body = do(t, h, http.MethodGet, "/events?title=A", "")
	assert.Equal(t, []any{
		map[string]any{"id": "1", "title": "A"},
		map[string]any{"id": "3", "title": "A"},
		map[string]any{"id": "5", "title": "A"},
	}, body["events"])

	_, body = do(t, h, http.MethodGet, "/events?title=Z", "")
	assert.Equal(t, []any{}, body["events"])
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		msg    string
	}{
		{"malformed json", http.MethodPost, "/events", `{"id":`, "invalid request"},
		{"missing id", http.MethodPost, "/events", `{"title":"A"}`, "missing field `id`"},
		{"missing title", http.MethodPost, "/events", `{"id":"1"}`, "missing field `title`"},
		{"both missing reports id first", http.MethodPost, "/events", `{}`, "missing field `id`"},
		{"null title", http.MethodPost, "/events", `{"id":"1","title":null}`, "missing field `title`"},
		{"wrong type", http.MethodPost, "/events", `{"id":1,"title":"A"}`, "invalid request"},
		{"empty body", http.MethodPost, "/events", "", "empty body"},
		{"title body missing", http.MethodPut, "/events/1/title", `{}`, "missing field `title`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, true, body["error"])
			assert.Contains(t, body["message"], tt.msg)
		})
	}
}

func TestRouting(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, body := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	code, _ = do(t, h, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, h, http.MethodPatch, "/events/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

// --- erros do serviço ---

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, params events.QueryParams) ([]events.Event, error) {
	args := m.Called(params)
	items, _ := args.Get(0).([]events.Event)
	return items, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, e events.Event) (string, error) {
	args := m.Called(e)
	return args.String(0), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (events.Event, error) {
	args := m.Called(id)
	return args.Get(0).(events.Event), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(id)
	return args.String(0), args.Error(1)
}

func (m *MockService) UpdateTitle(ctx context.Context, id, title string) (string, error) {
	args := m.Called(id, title)
	return args.String(0), args.Error(1)
}

func TestStoreFailureIs400(t *testing.T) {
	t.Parallel()

	storeErr := &events.StoreError{Op: "list events", Err: errors.New("ProvisionedThroughputExceededException")}
	svc := new(MockService)
	svc.On("List", events.QueryParams{}).Return(nil, storeErr)
	svc.On("Get", "1").Return(events.Event{}, &events.StoreError{Op: "get event", Err: errors.New("timeout")})

	h := handlers.NewRouter(svc)

	code, body := do(t, h, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "ProvisionedThroughputExceededException", body["message"])

	code, body = do(t, h, http.MethodGet, "/events/1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "get event: timeout", body["message"])

	svc.AssertExpectations(t)
}

func TestList_EmptyTitleFilter(t *testing.T) {
	t.Parallel()

	empty := ""
	svc := new(MockService)
	svc.On("List", events.QueryParams{Title: &empty}).Return([]events.Event{events.NewEvent("7", "")}, nil)

	code, body := do(t, handlers.NewRouter(svc), http.MethodGet, "/events?title=", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{map[string]any{"id": "7", "title": ""}}, body["events"])
	svc.AssertExpectations(t)
}

func TestEventLifecycle_EncodedSlashInID(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, _ := do(t, h, http.MethodPost, "/events", `{"id":"a/b","title":"A"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, h, http.MethodGet, "/events/a%2Fb", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"error": false, "event": map[string]any{"id": "a/b", "title": "A"}}, body)

	code, body = do(t, h, http.MethodPut, "/events/a%2Fb/title", `{"title":"B"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Event title for id: a/b changed to B", body["event"])

	code, body = do(t, h, http.MethodDelete, "/events/a%2Fb", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "event for id: a/b deleted.", body["message"])

	code, _ = do(t, h, http.MethodGet, "/events/a/b", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGet_EncodedSpaceInID(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, _ := do(t, h, http.MethodPost, "/events", `{"id":"meu evento","title":"A"}`)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, h, http.MethodGet, "/events/meu%20evento", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "meu evento", "title": "A"}, body["event"])
}

func TestCreate_EmptyStringsArePresent(t *testing.T) {
	t.Parallel()
	h := newRouter(t, 0)

	code, body := do(t, h, http.MethodPost, "/events", `{"id":"1","title":""}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "event added.", body["message"])

	code, body = do(t, h, http.MethodPut, "/events/1/title", `{"title":""}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Event title for id: 1 changed to ", body["event"])
}
