package redis

const (
	// KeyCatalog is the slot holding the whole catalog document.
	// The version suffix matches the original document key so an existing
	// deployment keeps its data.
	KeyCatalog = "edufiles:catalog:v1"

	// KeyPrefixSession is the prefix for active-identity slots, one per
	// session token.
	KeyPrefixSession = "edufiles:session:"
)

// SessionKey returns the Redis key for a session token.
func SessionKey(token string) string {
	return KeyPrefixSession + token
}
