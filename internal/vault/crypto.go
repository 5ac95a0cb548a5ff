package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the AES-256 key length.
const KeySize = 32

// blobVersion is prepended to every blob and authenticated as AAD.
const blobVersion byte = 0x01

var (
	hkdfSalt   = []byte("bitfighters.vault.salt.v1")
	hkdfInfo   = []byte("bitfighters.vault.key.v1")
	digestSalt = []byte("bitfighters.vault.digest.v1")
)

// MachineSecret returns a fingerprint of the host and OS user. It is stable
// across runs on the same account and differs between accounts.
func MachineSecret() []byte {
	h := blake3.New()
	host, _ := os.Hostname()
	home, _ := os.UserHomeDir()
	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil {
		name = u.Username + "/" + u.Uid
	}
	for _, part := range []string{"bitfighters", host, name, home} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return h.Sum(nil)
}

// DeriveKey expands secret into an AES-256 key.
func DeriveKey(secret []byte) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, hkdfSalt, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("deriving vault key: %w", err)
	}
	return key, nil
}

// PasswordDigest returns the hex argon2id digest of password under the fixed
// application salt. It is deterministic and irreversible.
func PasswordDigest(password string) string {
	if password == "" {
		return ""
	}
	sum := argon2.IDKey([]byte(password), digestSalt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(sum)
}

func seal(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	out := make([]byte, 1, 1+len(nonce)+len(plaintext)+aead.Overhead())
	out[0] = blobVersion
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, []byte{blobVersion}), nil
}

func open(blob, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(blob) < 1+aead.NonceSize()+aead.Overhead() {
		return nil, fmt.Errorf("blob is %d bytes, too short", len(blob))
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("blob version %d is not supported", blob[0])
	}
	nonce := blob[1 : 1+aead.NonceSize()]
	return aead.Open(nil, nonce, blob[1+aead.NonceSize():], []byte{blobVersion})
}
