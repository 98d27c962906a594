package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trace-microservice/internal/domain"
)

func TestPictoForCode(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "sun"},
		{1, "sun"},
		{2, "partly_cloudy"},
		{3, "cloud"},
		{45, "fog"},
		{48, "fog"},
		{51, "rain"},
		{65, "rain"},
		{82, "rain"},
		{71, "snow"},
		{86, "snow"},
		{95, "storm"},
		{99, "storm"},
		{42, "unavailable"},
		{-1, "unavailable"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, domain.PictoForCode(tt.code), "code %d", tt.code)
	}
}
