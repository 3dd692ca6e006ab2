package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationSlug(t *testing.T) {
	assert.Equal(t, "civixa_chennai", LocationSlug("Chennai"))
	assert.Equal(t, "civixa_new_city", LocationSlug("New City"))
	assert.Equal(t, "civixa_madurai", LocationSlug("  Madurai  "))
}
