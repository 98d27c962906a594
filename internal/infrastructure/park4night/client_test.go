package park4night

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalID(t *testing.T) {
	c := &Client{}

	tests := []struct {
		url      string
		expected string
	}{
		{"https://park4night.com/fr/place/123456", "123456"},
		{"https://park4night.com/fr/place/123456/", "123456"},
		{"https://park4night.com/fr/place/123456?utm=1", "123456"},
		{"https://park4night.com/fr/place/123456/photos", "123456"},
		{"https://park4night.com/fr/search?lat=48", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, c.ExternalID(tt.url), tt.url)
	}
}
