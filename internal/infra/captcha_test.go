package infra

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaStoreConsumeUnaSolaVez(t *testing.T) {
	s := NewCaptchaStore()
	s.Set("abc", "x7k2m")

	answer, ok := s.Consume("abc")
	require.True(t, ok)
	assert.Equal(t, "x7k2m", answer)

	_, ok = s.Consume("abc")
	assert.False(t, ok, "a captcha id must not verify twice")
}

func TestCaptchaStoreIDDesconocido(t *testing.T) {
	s := NewCaptchaStore()
	_, ok := s.Consume("nunca-existio")
	assert.False(t, ok)
}

func TestCaptchaStoreEntradaExpirada(t *testing.T) {
	s := NewCaptchaStore()
	s.Set("viejo", "abcde")

	s.mu.Lock()
	s.entries["viejo"].expiresAt = time.Now().Add(-time.Second)
	s.mu.Unlock()

	_, ok := s.Consume("viejo")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len(), "expired entry is removed on consume")
}

func TestCaptchaStoreSweepEliminaExpirados(t *testing.T) {
	s := NewCaptchaStore()
	s.Set("a", "1")
	s.Set("b", "2")

	s.mu.Lock()
	s.entries["a"].expiresAt = time.Now().Add(-time.Second)
	s.mu.Unlock()

	s.sweep()

	assert.Equal(t, 1, s.Len())
	_, ok := s.Consume("b")
	assert.True(t, ok)
}

func TestCaptchaStoreCapacidadAcotada(t *testing.T) {
	s := NewCaptchaStore()
	for i := 0; i < captchaMaxItems+50; i++ {
		s.Set(fmt.Sprintf("id-%d", i), "abcde")
	}

	assert.Equal(t, captchaMaxItems, s.Len())

	// The oldest entries were evicted, the newest survive.
	_, ok := s.Consume("id-0")
	assert.False(t, ok)
	_, ok = s.Consume(fmt.Sprintf("id-%d", captchaMaxItems+49))
	assert.True(t, ok)
}

func TestCaptchaGenerateYVerify(t *testing.T) {
	c := NewCaptcha(NewCaptchaStore())

	id, img, err := c.Generate()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Contains(t, img, "data:image/")

	answer, ok := c.store.Consume(id)
	require.True(t, ok)

	// Re-seed and verify case-insensitively.
	c.store.Set(id, answer)
	assert.True(t, c.Verify(id, answer))
	assert.False(t, c.Verify(id, answer), "verification consumes the entry")
}
