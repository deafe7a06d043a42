package captcha

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/code-100-precent/LingCaptcha/pkg/cache"
	"github.com/code-100-precent/LingCaptcha/pkg/captcha/audio"
	"github.com/code-100-precent/LingCaptcha/pkg/events"
	"github.com/code-100-precent/LingCaptcha/pkg/logger"
	"go.uber.org/zap"
)

// GlobalCaptchaManager is set once at startup and used by the HTTP handlers.
var GlobalCaptchaManager *Manager

var ErrNoActiveChallenge = errors.New("captcha: no active captcha challenge")

// DefaultTTL bounds both the reuse window for re-rendering the same image and
// the validity of a stored phrase.
const DefaultTTL = 10 * time.Minute

// imageCacheTTL is how long encoded image bytes stay cached. The fingerprint
// remains the source of truth; a cache miss just re-renders deterministically.
const imageCacheTTL = time.Minute

// Options configures a Manager. Zero fields fall back to defaults.
type Options struct {
	Width         int
	Height        int
	PhraseLength  int
	Alphabet      string
	TTL           time.Duration
	JPEGQuality   int
	DefaultLocale string

	// KeepPhraseOnSuccess defers invalidation of a solved challenge to an
	// explicit Invalidate call. The zero value consumes the phrase on the
	// first successful validation so it cannot be replayed.
	KeepPhraseOnSuccess bool
}

func (o *Options) fillDefaults() {
	if o.Width <= 0 {
		o.Width = 150
	}
	if o.Height <= 0 {
		o.Height = 40
	}
	if o.PhraseLength <= 0 {
		o.PhraseLength = DefaultPhraseLength
	}
	if o.Alphabet == "" {
		o.Alphabet = DefaultAlphabet
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.DefaultLocale == "" {
		o.DefaultLocale = "en"
	}
}

// Manager orchestrates challenge issue, reuse, audio assembly and validation
// for challenge sessions. It holds no per-user state itself and is safe for
// concurrent use across sessions.
type Manager struct {
	opts     Options
	renderer *Renderer
	cache    cache.Cache
	repos    []audio.Repository

	mu        sync.Mutex
	clipIndex audio.Index // lazily built, invalidated by RefreshClips
}

func NewManager(opts Options, byteCache cache.Cache, repos ...audio.Repository) *Manager {
	opts.fillDefaults()
	return &Manager{
		opts:     opts,
		renderer: NewRenderer(opts.JPEGQuality),
		cache:    byteCache,
		repos:    repos,
	}
}

// Options returns a copy of the effective manager options.
func (m *Manager) Options() Options { return m.opts }

// RequestChallenge returns the JPEG image for the session's challenge. A new
// phrase is generated when none is stored, when force is set, or when the
// stored challenge has outlived the reuse window; otherwise the stored
// fingerprint is replayed so a page reload shows the identical image.
func (m *Manager) RequestChallenge(s *ChallengeSession, force bool) ([]byte, error) {
	if ch, ok := s.Current(); ok && !force && !s.Expired(ch, m.opts.TTL) {
		return m.renderStored(ch)
	}

	phrase, err := GeneratePhrase(m.opts.PhraseLength, m.opts.Alphabet)
	if err != nil {
		return nil, err
	}
	img, fp, err := m.renderer.Render(phrase, m.opts.Width, m.opts.Height, "")
	if err != nil {
		return nil, err
	}
	ch := Challenge{Phrase: phrase, IssuedAt: s.Now(), Fingerprint: fp}
	if err := s.Store(ch); err != nil {
		return nil, err
	}

	m.cacheImage(ch, img)
	events.GetEventBus().Publish(events.Event{
		Type:   events.TypeChallengeIssued,
		Source: "captcha",
		Data:   map[string]interface{}{"forced": force},
	})
	return img, nil
}

// renderStored re-renders the stored challenge from its fingerprint, going
// through the byte cache first.
func (m *Manager) renderStored(ch Challenge) ([]byte, error) {
	key := imageCacheKey(ch, m.opts.Width, m.opts.Height)
	if m.cache != nil {
		if img, ok := cache.GetBytes(context.Background(), m.cache, key); ok {
			return img, nil
		}
	}
	img, _, err := m.renderer.Render(ch.Phrase, m.opts.Width, m.opts.Height, ch.Fingerprint)
	if err != nil {
		return nil, err
	}
	m.cacheImage(ch, img)
	return img, nil
}

func (m *Manager) cacheImage(ch Challenge, img []byte) {
	if m.cache == nil {
		return
	}
	key := imageCacheKey(ch, m.opts.Width, m.opts.Height)
	if err := m.cache.Set(context.Background(), key, img, imageCacheTTL); err != nil {
		logger.Warn("captcha image cache write failed", zap.Error(err))
	}
}

func imageCacheKey(ch Challenge, w, h int) string {
	sum := sha256.Sum256([]byte(ch.Phrase + "\x00" + string(ch.Fingerprint)))
	return fmt.Sprintf("captcha:image:%s:%dx%d", hex.EncodeToString(sum[:8]), w, h)
}

// Audio assembles the spoken rendering of the currently active phrase. It
// never issues or regenerates a challenge.
func (m *Manager) Audio(s *ChallengeSession) ([]byte, error) {
	ch, ok := s.Current()
	if !ok {
		return nil, ErrNoActiveChallenge
	}
	idx, err := m.ClipIndex()
	if err != nil {
		return nil, err
	}
	return audio.Assemble(ch.Phrase, m.opts.DefaultLocale, idx)
}

// Verify checks input against the session's stored phrase and applies the
// invalidation policy. Expired, missing and mismatched challenges all come
// back as plain false; the caller cannot tell which condition failed.
func (m *Manager) Verify(s *ChallengeSession, input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		// no user input, leave the challenge untouched
		return false
	}

	ch, ok := s.Current()
	if !ok {
		return false
	}
	if s.Expired(ch, m.opts.TTL) {
		return false
	}

	if !MatchPhrase(ch.Phrase, trimmed) {
		// burn the phrase so one challenge cannot be brute-forced
		if err := s.Invalidate(); err != nil {
			logger.Error("captcha invalidate after failed attempt", zap.Error(err))
		}
		events.GetEventBus().Publish(events.Event{
			Type:   events.TypeChallengeFailed,
			Source: "captcha",
		})
		return false
	}

	if !m.opts.KeepPhraseOnSuccess {
		if err := s.Invalidate(); err != nil {
			logger.Error("captcha invalidate after success", zap.Error(err))
		}
	}
	events.GetEventBus().Publish(events.Event{
		Type:   events.TypeChallengeVerified,
		Source: "captcha",
	})
	return true
}

// Invalidate clears the session's challenge; the surrounding form workflow
// calls this after it fully commits the user's action when
// KeepPhraseOnSuccess is set.
func (m *Manager) Invalidate(s *ChallengeSession) error {
	return s.Invalidate()
}

// ClipIndex returns the merged audio clip index, building it on first use.
func (m *Manager) ClipIndex() (audio.Index, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clipIndex != nil {
		return m.clipIndex, nil
	}
	idx, err := audio.BuildIndex(m.repos...)
	if err != nil {
		return nil, err
	}
	m.clipIndex = idx
	return idx, nil
}

// RefreshClips drops the cached clip index, forcing a rescan on next use.
// Called after new audio files are uploaded.
func (m *Manager) RefreshClips() {
	m.mu.Lock()
	m.clipIndex = nil
	m.mu.Unlock()
}

// HasAudio reports whether any audio clips are configured at all; the widget
// only offers a playback control when this is true.
func (m *Manager) HasAudio() bool {
	idx, err := m.ClipIndex()
	if err != nil {
		logger.Warn("captcha clip index scan failed", zap.Error(err))
		return false
	}
	return len(idx) > 0
}
