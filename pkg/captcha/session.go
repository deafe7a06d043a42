package captcha

import (
	"time"

	"github.com/spf13/cast"
)

// Session persistence fields. Clearing the phrase is the canonical
// "no active challenge" state.
const (
	SessionKeyPhrase      = "captcha_phrase"
	SessionKeyTime        = "captcha_time"
	SessionKeyFingerprint = "captcha_fingerprint"
)

// SessionStore is the narrow key-value surface the captcha core needs from
// whatever session mechanism carries per-user state. Values round-trip as
// opaque interface{} and are coerced on read.
type SessionStore interface {
	Get(key string) interface{}
	Set(key string, value interface{})
	Save() error
}

// Clock abstracts time for the expiry checks; tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return realClock{} }

// Challenge is the active phrase plus metadata bound to one session.
type Challenge struct {
	Phrase      string
	IssuedAt    time.Time
	Fingerprint Fingerprint
}

// ChallengeSession reads and mutates the challenge state of a single user
// session. It is scoped to one in-flight request; two racing requests on the
// same underlying session are not defended against.
type ChallengeSession struct {
	store SessionStore
	clock Clock
}

func NewChallengeSession(store SessionStore, clock Clock) *ChallengeSession {
	if clock == nil {
		clock = SystemClock()
	}
	return &ChallengeSession{store: store, clock: clock}
}

// Current returns the stored challenge, false when none is active.
func (s *ChallengeSession) Current() (Challenge, bool) {
	phrase := cast.ToString(s.store.Get(SessionKeyPhrase))
	if phrase == "" {
		return Challenge{}, false
	}
	issued := cast.ToInt64(s.store.Get(SessionKeyTime))
	fp := cast.ToString(s.store.Get(SessionKeyFingerprint))
	return Challenge{
		Phrase:      phrase,
		IssuedAt:    time.Unix(issued, 0),
		Fingerprint: Fingerprint(fp),
	}, true
}

// Store persists a freshly issued challenge.
func (s *ChallengeSession) Store(ch Challenge) error {
	s.store.Set(SessionKeyPhrase, ch.Phrase)
	s.store.Set(SessionKeyTime, ch.IssuedAt.Unix())
	s.store.Set(SessionKeyFingerprint, string(ch.Fingerprint))
	return s.store.Save()
}

// Invalidate clears the active phrase. Idempotent; callable at any time.
func (s *ChallengeSession) Invalidate() error {
	s.store.Set(SessionKeyPhrase, "")
	return s.store.Save()
}

// Expired reports whether the challenge is older than ttl at the session clock.
func (s *ChallengeSession) Expired(ch Challenge, ttl time.Duration) bool {
	return s.clock.Now().Sub(ch.IssuedAt) > ttl
}

// Now exposes the session clock.
func (s *ChallengeSession) Now() time.Time { return s.clock.Now() }
