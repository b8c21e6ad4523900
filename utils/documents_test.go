package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPublicID(t *testing.T) {
	tests := []struct {
		url          string
		resourceType string
		publicID     string
	}{
		{"https://res.cloudinary.com/demo/raw/upload/v1712345678/idea-documents/deck.pdf", "raw", "idea-documents/deck.pdf"},
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/idea-documents/cover.png", "image", "idea-documents/cover"},
		{"https://res.cloudinary.com/demo/image/upload/idea-documents/cover.jpg", "image", "idea-documents/cover"},
	}
	for _, tt := range tests {
		rt, id, err := extractPublicID(tt.url)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.resourceType, rt, tt.url)
		assert.Equal(t, tt.publicID, id, tt.url)
	}

	for _, bad := range []string{"https://example.com/file.pdf", "https://res.cloudinary.com/demo/raw/upload"} {
		_, _, err := extractPublicID(bad)
		assert.Error(t, err, bad)
	}
}

func TestS3KeyFromURL(t *testing.T) {
	s := &S3Store{bucket: "docs", region: "eu-west-1"}
	url := s.objectURL("idea-documents/20250101120000-deck.pdf")
	assert.Equal(t, "https://docs.s3.eu-west-1.amazonaws.com/idea-documents/20250101120000-deck.pdf", url)

	key, err := s.keyFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "idea-documents/20250101120000-deck.pdf", key)

	_, err = s.keyFromURL("https://docs.s3.eu-west-1.amazonaws.com/")
	assert.Error(t, err)
}
