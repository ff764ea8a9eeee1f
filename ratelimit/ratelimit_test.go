package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenThrottle(t *testing.T) {
	l := New(60, 3)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := New(60, 1)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"))
}

func TestLimiter_TracksKeys(t *testing.T) {
	l := New(60, 1)

	l.Allow("a")
	l.Allow("b")
	l.Allow("a")

	assert.Equal(t, 2, l.Len())
}
