package core

// PasswordHasher turns a plaintext password into a storable digest and
// verifies a plaintext against a stored digest
type PasswordHasher interface {
	// Hash returns the digest to store for plaintext
	Hash(plaintext string) (string, error)
	// Check reports whether plaintext matches the stored digest
	Check(plaintext, digest string) bool
}
