package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trace-microservice/internal/domain"
)

func TestPOICategoryLabel(t *testing.T) {
	assert.Equal(t, "Boulangerie", domain.POICategoryLabel("bakery"))
	assert.Equal(t, "Point de vue", domain.POICategoryLabel("viewpoint"))

	// Unmapped categories fall back to the raw category
	assert.Equal(t, "castle", domain.POICategoryLabel("castle"))
}

func TestSpotServiceCategory(t *testing.T) {
	assert.Equal(t, "drinking_water", domain.SpotServiceCategory("Eau potable"))
	assert.Equal(t, "fuel", domain.SpotServiceCategory("Station GPL"))
	assert.Equal(t, "internet_access", domain.SpotServiceCategory("Internet 3G/4G"))

	// Unknown labels are kept but tagged uncategorized
	assert.Equal(t, domain.CategoryUncategorized, domain.SpotServiceCategory("Service inconnu"))
}
