// Package vault keeps the optional "remember me" login on disk.
//
// The file holds a single base64-armored blob:
//
//	[version: 1 byte] [nonce: 12 bytes] [AES-256-GCM ciphertext + tag]
//
// The key is derived with HKDF-SHA256 from a BLAKE3 fingerprint of the
// machine and OS user, so a copied file does not open elsewhere. The vault
// never stores a plaintext password: a remembered login keeps an argon2id
// digest of it, and a login that is not remembered keeps only the flag.
//
// Every failure degrades to "no saved login". A file that cannot be read
// back is deleted so the next start does not fail the same way.
package vault
