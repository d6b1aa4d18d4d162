package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayerIDIsUnique(t *testing.T) {
	alloc := New()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := alloc.NewPlayerID()
		assert.True(t, Valid(id))
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("9b2d3a8e-4c1f-4a5e-8f0d-2b6c7e1a9f30"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("player-one"))
}
