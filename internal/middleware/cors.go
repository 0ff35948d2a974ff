package middleware

import "net/http"

// Origins is the cross-origin allow-list for the admin-facing listing
// endpoint. A request with no Origin header is same-origin and passes
// untouched; a declared origin must be on the list or the request is
// rejected before any handler logic runs.
type Origins []string

func (o Origins) Allowed(origin string) bool {
	for _, a := range o {
		if a == origin {
			return true
		}
	}
	return false
}

// Handler enforces the allow-list and mirrors the validated origin in
// the CORS response headers. Preflight OPTIONS requests are answered
// separately (see handler.SubmissionHandler.Preflight) so they stay
// outside the auth gate.
func (o Origins) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if !o.Allowed(origin) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		next.ServeHTTP(w, r)
	})
}
