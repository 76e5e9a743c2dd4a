package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cryptowatch/crypto-sheets/log"
)

type key int

const requestIDKey key = 0

const REQUEST_ID_HEADER = "X-Request-Id"

// RequestID returns the ID assigned to the request by the requestID middleware.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}

	return ""
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		id := rq.Header.Get(REQUEST_ID_HEADER)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(REQUEST_ID_HEADER, id)

		next.ServeHTTP(w, rq.WithContext(context.WithValue(rq.Context(), requestIDKey, id)))
	})
}

type recorder struct {
	http.ResponseWriter
	status int
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, rq *http.Request) {
		start := time.Now()
		rw := &recorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, rq)

		log.With(log.Fields{
			"request_id": RequestID(rq.Context()),
			"method":     rq.Method,
			"path":       rq.URL.Path,
			"status":     rw.status,
			"duration":   time.Since(start).String(),
		}).Infof("%v %v %v", rq.Method, rq.URL.Path, rw.status)
	})
}
