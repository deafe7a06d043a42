package captcha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStore is an in-memory SessionStore for tests.
type mapStore struct {
	values  map[string]interface{}
	saves   int
	saveErr error
}

func newMapStore() *mapStore {
	return &mapStore{values: map[string]interface{}{}}
}

func (s *mapStore) Get(key string) interface{}        { return s.values[key] }
func (s *mapStore) Set(key string, value interface{}) { s.values[key] = value }
func (s *mapStore) Save() error                       { s.saves++; return s.saveErr }

// fixedClock is a settable test clock.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession() (*ChallengeSession, *mapStore, *fixedClock) {
	store := newMapStore()
	clock := &fixedClock{t: time.Unix(1700000000, 0)}
	return NewChallengeSession(store, clock), store, clock
}

func TestChallengeSession_StoreAndCurrent(t *testing.T) {
	sess, store, clock := newTestSession()

	_, ok := sess.Current()
	assert.False(t, ok)

	ch := Challenge{Phrase: "abc123", IssuedAt: clock.Now(), Fingerprint: "fp-token"}
	require.NoError(t, sess.Store(ch))
	assert.Equal(t, 1, store.saves)

	got, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "abc123", got.Phrase)
	assert.Equal(t, Fingerprint("fp-token"), got.Fingerprint)
	assert.Equal(t, clock.Now().Unix(), got.IssuedAt.Unix())
}

func TestChallengeSession_CoercesStoredValues(t *testing.T) {
	// session backends may deserialize into strings; reads must coerce
	store := newMapStore()
	store.values[SessionKeyPhrase] = "abc123"
	store.values[SessionKeyTime] = "1700000000"
	store.values[SessionKeyFingerprint] = "fp-token"

	sess := NewChallengeSession(store, &fixedClock{t: time.Unix(1700000000, 0)})
	got, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), got.IssuedAt.Unix())
}

func TestChallengeSession_Invalidate(t *testing.T) {
	sess, _, clock := newTestSession()
	require.NoError(t, sess.Store(Challenge{Phrase: "abc123", IssuedAt: clock.Now()}))

	require.NoError(t, sess.Invalidate())
	_, ok := sess.Current()
	assert.False(t, ok)

	// idempotent
	require.NoError(t, sess.Invalidate())
}

func TestChallengeSession_Expired(t *testing.T) {
	sess, _, clock := newTestSession()
	ch := Challenge{Phrase: "abc123", IssuedAt: clock.Now()}

	ttl := 10 * time.Minute
	assert.False(t, sess.Expired(ch, ttl))

	clock.advance(ttl)
	assert.False(t, sess.Expired(ch, ttl), "exactly at ttl is still valid")

	clock.advance(time.Second)
	assert.True(t, sess.Expired(ch, ttl))
}

func TestNewChallengeSession_DefaultClock(t *testing.T) {
	sess := NewChallengeSession(newMapStore(), nil)
	assert.WithinDuration(t, time.Now(), sess.Now(), time.Minute)
}
