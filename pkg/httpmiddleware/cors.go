package httpmiddleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures cross-origin access for the browser storefront.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to call the API. Empty, or a
	// "*" entry, allows every origin.
	AllowOrigins []string
	// AllowHeaders lists request headers allowed on preflight. Empty
	// echoes whatever headers the preflight asked for.
	AllowHeaders []string
	// AllowCredentials permits cookies on cross-origin requests. The
	// wildcard origin cannot carry credentials, so the request origin
	// is echoed instead.
	AllowCredentials bool
	// MaxAge is the preflight cache lifetime in seconds. Zero omits
	// the header.
	MaxAge int
}

// allowedMethods covers the whole route table: catalog reads plus the
// checkout and chat posts.
const allowedMethods = "GET, POST, OPTIONS"

// CORS handles cross-origin requests. Preflights are answered with 204
// and never reach the next handler; disallowed origins get no CORS
// headers at all.
func CORS(cfg CORSConfig) Middleware {
	origins := newOriginSet(cfg.AllowOrigins)
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Vary on Origin so shared caches keep per-origin copies.
			w.Header().Add("Vary", "Origin")
			allowOrigin := origins.resolve(origin, cfg.AllowCredentials)

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				if allowOrigin != "" {
					w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
					if cfg.AllowCredentials {
						w.Header().Set("Access-Control-Allow-Credentials", "true")
					}
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Access-Control-Request-Method")
			w.Header().Add("Vary", "Access-Control-Request-Headers")

			if allowOrigin != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowOrigin)
				h.Set("Access-Control-Allow-Methods", allowedMethods)
				switch {
				case allowHeaders != "":
					h.Set("Access-Control-Allow-Headers", allowHeaders)
				case r.Header.Get("Access-Control-Request-Headers") != "":
					h.Set("Access-Control-Allow-Headers", r.Header.Get("Access-Control-Request-Headers"))
				}
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// originSet matches request origins case-insensitively and echoes the
// configured casing back.
type originSet struct {
	any     bool
	origins map[string]string
}

func newOriginSet(list []string) originSet {
	s := originSet{any: len(list) == 0, origins: make(map[string]string, len(list))}
	for _, o := range list {
		if o == "*" {
			s.any = true
			continue
		}
		s.origins[strings.ToLower(o)] = o
	}
	return s
}

func (s originSet) resolve(origin string, credentials bool) string {
	if s.any {
		if credentials {
			return origin
		}
		return "*"
	}
	return s.origins[strings.ToLower(origin)]
}
