package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "reelview_session"

// CookieDuration bounds how long a browser session survives untouched.
const CookieDuration = 7 * 24 * time.Hour

// Claims binds a client session id to the backend credential it carries.
type Claims struct {
	SessionID    string `json:"sid"`
	BackendToken string `json:"btk,omitempty"`
	jwt.RegisteredClaims
}

// NewSessionID mints an id for a fresh browser session.
func NewSessionID() string {
	return uuid.NewString()
}

// EncodeCookie signs a session cookie value. The backend token may be empty
// for anonymous sessions that only need browse-state continuity.
func EncodeCookie(secret, sessionID, backendToken string) (string, error) {
	claims := &Claims{
		SessionID:    sessionID,
		BackendToken: backendToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(CookieDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// DecodeCookie verifies a session cookie value and returns its claims.
func DecodeCookie(secret, value string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(value, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session cookie: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid session cookie")
	}
	return claims, nil
}

// SetCookie writes the session cookie on the response.
func SetCookie(w http.ResponseWriter, value string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(CookieDuration.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
