package backend

import "unpdf/config"

// LoadOptions configures how a document is opened. Per REDESIGN FLAGS (a)
// this is a plain struct rather than a builder chain.
type LoadOptions struct {
	// Password is accepted but not passed to the underlying library, so no
	// decryption takes place; when the library fails on an encrypted
	// document, the Load functions report errors.Encrypted rather than
	// silently returning garbage.
	Password config.SecretString
}
