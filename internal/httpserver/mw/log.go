package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/rolewithai/internal/logger"
	"github.com/MrSnakeDoc/rolewithai/internal/utils"
)

// Probe paths are polled constantly and only logged at debug level.
var probePaths = map[string]bool{"/healthz": true, "/readyz": true}

// Log writes one access line per request. 5xx responses are logged at error
// level and 4xx at warn so rejected extension calls stand out.
func Log(log logger.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []logger.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("client_ip", utils.ClientIP(r, trustProxy)),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			}
			if user := r.Header.Get("X-User-ID"); user != "" {
				fields = append(fields, logger.String("user_id", user))
			}

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("http_request", fields...)
			case status >= http.StatusBadRequest:
				log.Warn("http_request", fields...)
			case probePaths[r.URL.Path]:
				log.Debug("http_request", fields...)
			default:
				log.Info("http_request", fields...)
			}
		})
	}
}
