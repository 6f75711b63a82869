package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cornelius/blog/internal/core/domain"
)

// DefaultCookieName is the name of the session cookie.
const DefaultCookieName = "blog.sid"

var ErrInvalidCookie = errors.New("invalid session cookie")

// CookieCodec signs session tokens into cookie values and verifies them on
// the way back. The cookie only carries the token; session state stays in
// the server-side store.
type CookieCodec struct {
	name   string
	secret []byte
	secure bool
}

func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{name: DefaultCookieName, secret: []byte(secret), secure: secure}
}

// Name returns the cookie name.
func (cc *CookieCodec) Name() string {
	return cc.name
}

// Encode returns a cookie holding the signed session token. The cookie
// expires together with the session.
func (cc *CookieCodec) Encode(session *domain.Session) (*http.Cookie, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.Token,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
	if err != nil {
		return nil, err
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	return &http.Cookie{
		Name:     cc.name,
		Value:    signed,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode verifies the cookie signature and expiry and returns the session token.
func (cc *CookieCodec) Decode(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidCookie
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}

// Clear returns a cookie that removes the session cookie from the browser.
func (cc *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     cc.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
