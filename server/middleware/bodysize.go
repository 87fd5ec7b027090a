package middleware

import "net/http"

const defaultMaxBodyBytes = 4 << 20

// BodySizeLimit returns middleware that restricts the request body to
// maxBytes. A non-positive limit falls back to the default of 4MB.
func BodySizeLimit(maxBytes int64) Middleware {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
