package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID(12)
	assert.Len(t, id, 12)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[GenerateID(12)] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/grains?page=3&limit=20", nil)
	skip, limit := ParsePagination(r, 10, 100)
	assert.Equal(t, int64(40), skip)
	assert.Equal(t, int64(20), limit)

	// defaults on missing or garbage
	r = httptest.NewRequest("GET", "/api/grains?page=abc&limit=-5", nil)
	skip, limit = ParsePagination(r, 10, 100)
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(10), limit)

	// limit capped at max
	r = httptest.NewRequest("GET", "/api/grains?limit=9999", nil)
	_, limit = ParsePagination(r, 10, 100)
	assert.Equal(t, int64(100), limit)
}

func TestContains(t *testing.T) {
	vocab := []string{"Wheat", "Rice"}
	assert.True(t, Contains(vocab, "Wheat"))
	assert.False(t, Contains(vocab, "wheat"))
}
