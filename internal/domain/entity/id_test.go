package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

func TestCanonicalID(t *testing.T) {
	const want = "0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f01"
	for _, in := range []string{
		want,
		"0C3F7F0E-1D1E-4A0B-8B7A-1B2C3D4E5F01",
		"{0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f01}",
		"urn:uuid:0c3f7f0e-1d1e-4a0b-8b7a-1b2c3d4e5f01",
		"0c3f7f0e1d1e4a0b8b7a1b2c3d4e5f01",
	} {
		got, ok := entity.CanonicalID(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := entity.CanonicalID("w1")
	assert.False(t, ok)
	_, ok = entity.CanonicalID("")
	assert.False(t, ok)
}
