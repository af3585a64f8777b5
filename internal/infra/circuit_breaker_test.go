package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProveedor = errors.New("provider down")

func cbParaTests() *CircuitBreaker {
	return NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 2,
		OpenTimeout:      50 * time.Millisecond,
	})
}

func TestCircuitBreakerAbreTrasFallosConsecutivos(t *testing.T) {
	cb := cbParaTests()

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errProveedor })
		assert.ErrorIs(t, err, errProveedor)
	}

	assert.Equal(t, CBOpen, cb.State())
	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreakerExitoReiniciaConteo(t *testing.T) {
	cb := cbParaTests()

	require.Error(t, cb.Execute(func() error { return errProveedor }))
	require.Error(t, cb.Execute(func() error { return errProveedor }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errProveedor }))
	require.Error(t, cb.Execute(func() error { return errProveedor }))

	assert.Equal(t, CBClosed, cb.State(), "interleaved success resets the failure count")
}

func TestCircuitBreakerSeRecuperaViaHalfOpen(t *testing.T) {
	cb := cbParaTests()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errProveedor })
	}
	require.Equal(t, CBOpen, cb.State())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreakerProbeFallidoReabre(t *testing.T) {
	cb := cbParaTests()

	for i := 0; i < 3; i++ {
		_ = cb.Execute(func() error { return errProveedor })
	}
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, CBHalfOpen, cb.State())

	require.Error(t, cb.Execute(func() error { return errProveedor }))
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreakerEstadoLegible(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
