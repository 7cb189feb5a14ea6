package middleware

import "net/http"

// MethodOverride lets plain HTML forms drive PUT/DELETE routes: a POST with
// ?_method=PUT|DELETE in the query string is routed as that verb. Only the
// query is consulted so multipart bodies are left untouched for handlers.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.URL.Query().Get("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
