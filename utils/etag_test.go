package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateETag(t *testing.T) {
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)

	tag := GenerateETag("idea-1", at)
	assert.Equal(t, tag, GenerateETag("idea-1", at))
	assert.Regexp(t, `^"[0-9a-f]{40}"$`, tag)
	assert.NotEqual(t, tag, GenerateETag("idea-2", at))
	assert.NotEqual(t, tag, GenerateETag("idea-1", at.Add(time.Nanosecond)))
}

func TestNewIDIsUniqueAndOrdered(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
	assert.LessOrEqual(t, a[:8], b[:8], "v7 ids sort by creation time")
}
