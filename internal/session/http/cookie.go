package http

import (
	"net/http"
	"strings"
	"time"
)

// CookieConfig holds the attributes of the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (cc CookieConfig) build(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cc.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		Secure:   cc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// write sets the session cookie on w, dropping any Set-Cookie for the same name added
// earlier in the request so the client only ever sees one outcome.
func (cc CookieConfig) write(w http.ResponseWriter, cookie *http.Cookie) {
	header := w.Header()
	prefix := cc.Name + "="

	existing := header.Values("Set-Cookie")
	header.Del("Set-Cookie")
	for _, v := range existing {
		if !strings.HasPrefix(v, prefix) {
			header.Add("Set-Cookie", v)
		}
	}

	if v := cookie.String(); v != "" {
		header.Add("Set-Cookie", v)
	}
}

// set writes a session cookie holding token until expires, ttl from now.
func (cc CookieConfig) set(w http.ResponseWriter, token string, expires time.Time, ttl time.Duration) {
	cc.write(w, cc.build(token, expires, int(ttl.Seconds())))
}

// clear writes an empty, already expired session cookie.
func (cc CookieConfig) clear(w http.ResponseWriter) {
	cc.write(w, cc.build("", time.Unix(0, 0), -1))
}
