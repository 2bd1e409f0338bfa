package session

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const DefaultCookieName = "SessionId"

// CookieCodec signs session tokens into cookies and reads them back.
type CookieCodec struct {
	name   string
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCookieCodec builds a codec. blockKey may be nil to sign without
// encrypting; otherwise it must be 16, 24 or 32 bytes.
func NewCookieCodec(name string, hashKey, blockKey []byte, secure bool) *CookieCodec {
	if name == "" {
		name = DefaultCookieName
	}
	sc := securecookie.New(hashKey, blockKey)
	// expiry is enforced by the server-side idle timeout
	sc.MaxAge(0)
	return &CookieCodec{name: name, sc: sc, secure: secure}
}

func (c *CookieCodec) Name() string { return c.name }

// Cookie returns the cookie carrying token.
func (c *CookieCodec) Cookie(token string) (*http.Cookie, error) {
	value, err := c.sc.Encode(c.name, token)
	if err != nil {
		return nil, err
	}
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Clear returns a cookie that makes the browser drop the session cookie.
func (c *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Token extracts the session token from r. Missing and tampered cookies
// both report ok == false.
func (c *CookieCodec) Token(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	var token string
	if err := c.sc.Decode(c.name, cookie.Value, &token); err != nil {
		return "", false
	}
	return token, token != ""
}
