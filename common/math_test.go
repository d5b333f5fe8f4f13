package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-3, 1, 5))
	assert.Equal(t, 5.0, Clamp(9, 1, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 1, 5))
}

func TestLerp(t *testing.T) {
	assert.InDelta(t, 5.0, Lerp(0, 10, 0.5), 1e-6)
	assert.InDelta(t, 0.0, Lerp(0, 10, 0), 1e-6)
	assert.InDelta(t, 7.0, Lerp(4, 24, 0.15), 1e-9)
}
