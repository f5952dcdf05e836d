package globals

import "context"

// JwtSecret signs and verifies every token. main wires it from config before
// the server starts; the fallback only covers tests and dev shells.
var JwtSecret = []byte("change_me_in_production")

// SetJwtSecret installs the configured signing key. Empty input keeps the
// current key.
func SetJwtSecret(secret string) {
	if secret != "" {
		JwtSecret = []byte(secret)
	}
}

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const RoleKey ContextKey = "role"

var Ctx = context.Background()
