package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"shaadi/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a unique identifier, honoring one supplied
// by an upstream proxy, and echoes it back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
