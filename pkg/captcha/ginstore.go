package captcha

import "github.com/gin-contrib/sessions"

// ginSessionStore adapts a gin-contrib session to the SessionStore interface.
type ginSessionStore struct {
	s sessions.Session
}

// GinSession wraps the request's session for use by the captcha core.
func GinSession(s sessions.Session) SessionStore {
	return ginSessionStore{s: s}
}

func (g ginSessionStore) Get(key string) interface{} {
	return g.s.Get(key)
}

func (g ginSessionStore) Set(key string, value interface{}) {
	g.s.Set(key, value)
}

func (g ginSessionStore) Save() error {
	return g.s.Save()
}
