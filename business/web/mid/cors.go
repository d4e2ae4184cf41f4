package mid

import (
	"context"
	"net/http"

	"github.com/feliperdao/kipubank/foundation/web"
)

// Cors sets the response headers for Cross-Origin Resource Sharing. The
// bank API only serves GET and POST, so the allowed method set is kept to
// those plus the preflight OPTIONS.
func Cors(origin string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Origin, Accept, Content-Type, Content-Length, Accept-Encoding")

			return handler(ctx, w, r)
		}

		return h
	}

	return m
}
