package infra

// captcha.go — login captcha generation and its in-memory store.
//
// The store is a bounded TTL map: entries expire after captchaTTL and the
// oldest entries are evicted once capacity is reached, so an attacker
// hammering the captcha endpoint cannot grow it without bound. A background
// sweep removes expired entries; verification always consumes the entry.

import (
	"strings"
	"sync"
	"time"

	"github.com/mojocn/base64Captcha"
	"github.com/rs/zerolog/log"
)

const (
	captchaTTL      = 10 * time.Minute
	captchaMaxItems = 200
	captchaSweep    = time.Minute
)

type captchaEntry struct {
	answer    string
	expiresAt time.Time
}

// CaptchaStore holds pending captcha answers keyed by id.
type CaptchaStore struct {
	mu      sync.Mutex
	entries map[string]*captchaEntry
	// order tracks insertion order for capacity eviction (oldest first).
	order []string
}

func NewCaptchaStore() *CaptchaStore {
	s := &CaptchaStore{entries: make(map[string]*captchaEntry)}
	go s.sweepLoop()
	return s
}

func (s *CaptchaStore) Set(id, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = &captchaEntry{
		answer:    answer,
		expiresAt: time.Now().Add(captchaTTL),
	}
	s.order = append(s.order, id)

	for len(s.entries) > captchaMaxItems && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
}

// Consume returns the stored answer and removes the entry. Expired or
// unknown ids return ok=false.
func (s *CaptchaStore) Consume(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return "", false
	}
	delete(s.entries, id)
	if entry.expiresAt.Before(time.Now()) {
		return "", false
	}
	return entry.answer, true
}

// Len reports the number of live entries (sweeps happen lazily, so expired
// but unswept entries count until the next sweep).
func (s *CaptchaStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *CaptchaStore) sweepLoop() {
	ticker := time.NewTicker(captchaSweep)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep()
	}
}

func (s *CaptchaStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	purged := 0
	for id, entry := range s.entries {
		if entry.expiresAt.Before(now) {
			delete(s.entries, id)
			purged++
		}
	}
	if purged > 0 {
		remaining := s.order[:0]
		for _, id := range s.order {
			if _, ok := s.entries[id]; ok {
				remaining = append(remaining, id)
			}
		}
		s.order = remaining
		log.Debug().Int("purged", purged).Int("remaining", len(s.entries)).Msg("captcha store swept")
	}
}

// ── Captcha generator ─────────────────────────────────────────────────────────

// Captcha produces base64-encoded captcha images backed by the bounded store.
type Captcha struct {
	driver base64Captcha.Driver
	store  *CaptchaStore
}

func NewCaptcha(store *CaptchaStore) *Captcha {
	// 5-character alphanumeric, mild noise — same shape as the old SVG captcha.
	driver := base64Captcha.NewDriverString(
		46, 140, 2, base64Captcha.OptionShowHollowLine, 5,
		"abcdefghjkmnpqrstuvwxyz23456789", nil, nil, nil,
	)
	return &Captcha{driver: driver.ConvertFonts(), store: store}
}

// Generate creates a new captcha and returns its id and a base64 data URI.
func (c *Captcha) Generate() (string, string, error) {
	id, content, answer := c.driver.GenerateIdQuestionAnswer()
	item, err := c.driver.DrawCaptcha(content)
	if err != nil {
		return "", "", err
	}
	c.store.Set(id, answer)
	return id, item.EncodeB64string(), nil
}

// Verify consumes the captcha and compares case-insensitively.
func (c *Captcha) Verify(id, value string) bool {
	answer, ok := c.store.Consume(id)
	if !ok {
		return false
	}
	return strings.EqualFold(answer, value)
}
