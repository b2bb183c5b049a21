// Package cookie moves session ids between HTTP responses and requests as
// signed, HTTP-only cookies.
package cookie

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dtroode/sessiongate/internal/model"
)

// DefaultName is the cookie name used when Options.Name is empty.
const DefaultName = "sid"

// Options is the cookie policy, fixed at startup.
type Options struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   time.Duration
}

// Jar writes and reads the session cookie.
type Jar struct {
	opts   Options
	signer model.SessionSigner
}

func NewJar(opts Options, signer model.SessionSigner) *Jar {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}
	return &Jar{opts: opts, signer: signer}
}

// Name returns the cookie name.
func (j *Jar) Name() string {
	return j.opts.Name
}

// Set writes a cookie carrying the signed session id.
func (j *Jar) Set(w http.ResponseWriter, session model.Session) error {
	value, err := j.signer.Sign(session.ID)
	if err != nil {
		return fmt.Errorf("failed to sign session cookie: %w", err)
	}

	maxAge := int(j.opts.MaxAge / time.Second)
	if maxAge <= 0 {
		maxAge = int(time.Until(session.ExpiresAt) / time.Second)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     j.opts.Name,
		Value:    value,
		Path:     j.opts.Path,
		Domain:   j.opts.Domain,
		MaxAge:   maxAge,
		Secure:   j.opts.Secure,
		HttpOnly: true,
		SameSite: j.opts.SameSite,
	})

	return nil
}

// Clear tells the client to drop the session cookie.
func (j *Jar) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     j.opts.Name,
		Value:    "",
		Path:     j.opts.Path,
		Domain:   j.opts.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   j.opts.Secure,
		HttpOnly: true,
		SameSite: j.opts.SameSite,
	})
}

// SessionID returns the session id from r, or "" when the cookie is missing
// or its signature does not verify.
func (j *Jar) SessionID(r *http.Request) string {
	c, err := r.Cookie(j.opts.Name)
	if err != nil || c.Value == "" {
		return ""
	}

	id, err := j.signer.Parse(c.Value)
	if err != nil {
		return ""
	}

	return id
}
