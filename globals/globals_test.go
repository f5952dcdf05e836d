package globals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetJwtSecret(t *testing.T) {
	old := JwtSecret
	t.Cleanup(func() { JwtSecret = old })

	SetJwtSecret("operator-secret")
	assert.Equal(t, []byte("operator-secret"), JwtSecret)

	// empty input must not wipe the installed key
	SetJwtSecret("")
	assert.Equal(t, []byte("operator-secret"), JwtSecret)
}
