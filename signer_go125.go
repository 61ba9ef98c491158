//go:build go1.25

package dilithium

import "crypto"

// Compile-time interface assertions for crypto.MessageSigner (Go 1.25+).
var (
	_ crypto.MessageSigner = (*PrivateKeyDIL2)(nil)
	_ crypto.MessageSigner = (*PrivateKeyDIL3)(nil)
	_ crypto.MessageSigner = (*PrivateKeyDIL5)(nil)
)
