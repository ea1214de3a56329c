package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/raywall/event-service/pkg/metrics"
	"github.com/rs/zerolog"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware registra contagem, latência e erros por rota.
// A tag de rota usa o template do mux (/events/{id}) para não explodir
// a cardinalidade com ids.
func MetricsMiddleware(rec *metrics.Recorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sr, r)

			route := "unmatched"
			if cr := mux.CurrentRoute(r); cr != nil {
				if tpl, err := cr.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			tags := []string{
				"route:" + route,
				"method:" + r.Method,
				"status:" + strconv.Itoa(sr.status),
			}

			logger := zerolog.Ctx(r.Context())
			if err := rec.Record(metrics.RequestCount, 1, tags...); err != nil {
				logger.Warn().Err(err).Msg("falha ao registrar métrica")
			}
			if err := rec.Record(metrics.RequestLatency, float64(time.Since(start).Milliseconds()), tags...); err != nil {
				logger.Warn().Err(err).Msg("falha ao registrar métrica")
			}
			if sr.status >= http.StatusBadRequest {
				if err := rec.Record(metrics.RequestError, 1, tags...); err != nil {
					logger.Warn().Err(err).Msg("falha ao registrar métrica")
				}
			}
		})
	}
}
