package httpmiddleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestIDMaxLen bounds client-supplied IDs so a hostile header cannot
// bloat logs.
const requestIDMaxLen = 128

type requestIDKey struct{}

// RequestIDFromContext returns the request ID stored by RequestID, or
// "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestID tags every request with an identifier: a sane incoming
// X-Request-ID is kept so IDs correlate across services, anything else
// is replaced with a fresh UUID. The ID is echoed on the response
// header and stored in the request context.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sanitizeRequestID(r.Header.Get(requestIDHeader))
			if id == "" {
				id = uuid.New().String()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sanitizeRequestID returns id if it is usable as-is: non-empty, within
// the length bound, printable ASCII only. Anything else maps to "".
func sanitizeRequestID(id string) string {
	if id == "" || len(id) > requestIDMaxLen {
		return ""
	}
	for i := range len(id) {
		if id[i] < 0x20 || id[i] > 0x7e {
			return ""
		}
	}
	return id
}
