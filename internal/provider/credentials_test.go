package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialPoolRoundRobin(t *testing.T) {
	pool := NewCredentialPool("tok1, tok2, tok3")
	require.Equal(t, 3, pool.Size())

	first, err := pool.Acquire()
	require.NoError(t, err)
	second, err := pool.Acquire()
	require.NoError(t, err)
	third, err := pool.Acquire()
	require.NoError(t, err)
	fourth, err := pool.Acquire()
	require.NoError(t, err)

	assert.Equal(t, "tok1", first)
	assert.Equal(t, "tok2", second)
	assert.Equal(t, "tok3", third)
	assert.Equal(t, "tok1", fourth, "rotation wraps around")
}

func TestCredentialPoolSkipsExhausted(t *testing.T) {
	pool := NewCredentialPool("tok1,tok2")

	tok, err := pool.Acquire()
	require.NoError(t, err)
	require.Equal(t, "tok1", tok)

	pool.MarkExhausted("tok1")

	for i := 0; i < 3; i++ {
		tok, err = pool.Acquire()
		require.NoError(t, err)
		assert.Equal(t, "tok2", tok, "exhausted token must never be selected")
	}
}

func TestCredentialPoolAllExhausted(t *testing.T) {
	pool := NewCredentialPool("tok1,tok2")
	pool.MarkExhausted("tok1")
	pool.MarkExhausted("tok2")

	_, err := pool.Acquire()
	require.Error(t, err)

	var nce *NoCredentialsError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, 2, nce.Total)
	assert.Greater(t, nce.ResetAfter, time.Duration(0))
	assert.Contains(t, err.Error(), "exhausted")
}

func TestCredentialPoolResetsAfterTTL(t *testing.T) {
	pool := NewCredentialPool("tok1")
	current := time.Now()
	pool.now = func() time.Time { return current }

	pool.MarkExhausted("tok1")
	_, err := pool.Acquire()
	require.Error(t, err)

	// 24h+ later the token becomes selectable again.
	current = current.Add(CredentialResetTTL + time.Minute)
	tok, err := pool.Acquire()
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)
	assert.Equal(t, 1, pool.AvailableCount())
}

func TestCredentialPoolEmpty(t *testing.T) {
	pool := NewCredentialPool("")
	assert.Equal(t, 0, pool.Size())

	_, err := pool.Acquire()
	var nce *NoCredentialsError
	require.ErrorAs(t, err, &nce)
	assert.Equal(t, "no credentials configured", err.Error())
}
