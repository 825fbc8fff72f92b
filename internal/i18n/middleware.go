package i18n

import "net/http"

// Middleware injects a localizer into every request context. A lang query
// parameter or Accept-Language header overrides the server default.
func Middleware(defaultLang string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := r.URL.Query().Get("lang")
			if lang == "" {
				lang = r.Header.Get("Accept-Language")
			}
			if lang == "" {
				lang = defaultLang
			}
			ctx := WithLocalizer(r.Context(), NewLocalizer(lang))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
