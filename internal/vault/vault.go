package vault

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitfighters/launcher/internal/apperr"
	"github.com/bitfighters/launcher/internal/logging"
)

// Credential is the remembered login record.
type Credential struct {
	Username       string `json:"username"`
	PasswordDigest string `json:"password_digest"`
	RememberMe     bool   `json:"remember_me"`
	UserID         int    `json:"user_id"`
	UserCreatedAt  string `json:"user_created_at"`
	// ProfileRef is reserved for a profile picture reference; the login
	// response does not carry one yet.
	ProfileRef string `json:"profile_ref"`
}

// Vault owns the credential file.
type Vault struct {
	path   string
	secret []byte
	log    *slog.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithLogger sets the logger used for absorbed failures.
func WithLogger(l *slog.Logger) Option {
	return func(v *Vault) {
		v.log = l
	}
}

// WithSecret replaces the machine fingerprint as key material.
func WithSecret(secret []byte) Option {
	return func(v *Vault) {
		v.secret = secret
	}
}

// New returns a vault stored at path.
func New(path string, opts ...Option) *Vault {
	v := &Vault{path: path}
	for _, opt := range opts {
		opt(v)
	}
	if v.secret == nil {
		v.secret = MachineSecret()
	}
	v.log = logging.OrDiscard(v.log)
	return v
}

// Path returns the credential file location.
func (v *Vault) Path() string {
	return v.path
}

// Load returns the saved credential. The boolean is false when nothing
// usable is stored; an unreadable file is deleted.
func (v *Vault) Load() (Credential, bool) {
	data, err := os.ReadFile(v.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Credential{}, false
	}
	if err != nil {
		v.log.Warn("reading saved login", "path", v.path, "error", err)
		return Credential{}, false
	}

	cred, err := v.decode(data)
	if err != nil {
		v.log.Warn("discarding unreadable saved login", "path", v.path, "error", err)
		if rmErr := os.Remove(v.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			v.log.Warn("removing saved login", "path", v.path, "error", rmErr)
		}
		return Credential{}, false
	}
	return cred, true
}

// Save persists a login. When remember is false only the flag is kept.
func (v *Vault) Save(username, password string, remember bool, userID int, createdAt string) error {
	cred := Credential{RememberMe: remember}
	if remember {
		cred.Username = username
		cred.PasswordDigest = PasswordDigest(password)
		cred.UserID = userID
		cred.UserCreatedAt = createdAt
	}

	data, err := v.encode(cred)
	if err != nil {
		return apperr.Wrap(apperr.KindStorage, "vault.save", "could not save login", err)
	}
	if err := os.MkdirAll(filepath.Dir(v.path), 0o700); err != nil {
		return apperr.Wrap(apperr.KindStorage, "vault.save", "could not save login", err)
	}
	if err := os.WriteFile(v.path, data, 0o600); err != nil {
		return apperr.Wrap(apperr.KindStorage, "vault.save", "could not save login", err)
	}
	return nil
}

// Clear deletes the credential file. A missing file is not an error.
func (v *Vault) Clear() error {
	if err := os.Remove(v.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.KindStorage, "vault.clear", "could not forget login", err)
	}
	return nil
}

func (v *Vault) encode(cred Credential) ([]byte, error) {
	plaintext, err := json.Marshal(cred)
	if err != nil {
		return nil, fmt.Errorf("marshaling credential: %w", err)
	}
	key, err := DeriveKey(v.secret)
	if err != nil {
		return nil, err
	}
	blob, err := seal(plaintext, key)
	if err != nil {
		return nil, fmt.Errorf("encrypting credential: %w", err)
	}
	return []byte(base64.StdEncoding.EncodeToString(blob)), nil
}

func (v *Vault) decode(data []byte) (Credential, error) {
	blob, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return Credential{}, fmt.Errorf("decoding base64: %w", err)
	}
	key, err := DeriveKey(v.secret)
	if err != nil {
		return Credential{}, err
	}
	plaintext, err := open(blob, key)
	if err != nil {
		return Credential{}, fmt.Errorf("decrypting credential: %w", err)
	}
	var cred Credential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return Credential{}, fmt.Errorf("parsing credential: %w", err)
	}
	return cred, nil
}
