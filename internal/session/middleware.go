package session

import (
	"context"
	"net/http"
)

type contextKey string

const viewerKey contextKey = "viewer"

// ViewerFromContext returns the resolved viewer for the request. The
// middleware guarantees one is always present on wrapped routes.
func ViewerFromContext(ctx context.Context) Viewer {
	v, _ := ctx.Value(viewerKey).(Viewer)
	return v
}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// Middleware resolves the session cookie into a Viewer on the request
// context. Requests without a valid cookie get a fresh anonymous session and
// a new cookie; a cookie whose backend token no longer validates degrades to
// anonymous without dropping the session id.
func Middleware(store *Store, secret string, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID, backendToken string

			if cookie, err := r.Cookie(CookieName); err == nil {
				if claims, err := DecodeCookie(secret, cookie.Value); err == nil {
					sessionID = claims.SessionID
					backendToken = claims.BackendToken
				}
			}

			if sessionID == "" {
				sessionID = NewSessionID()
				if value, err := EncodeCookie(secret, sessionID, ""); err == nil {
					SetCookie(w, value, secureCookies)
				}
			}

			viewer := store.Resolve(r.Context(), sessionID, backendToken)
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
		})
	}
}
