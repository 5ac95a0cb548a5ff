package vault

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "credentials.dat"), WithSecret([]byte("test-machine")))
}

func TestLoad_Missing(t *testing.T) {
	v := newTestVault(t)
	_, ok := v.Load()
	assert.False(t, ok)
}

func TestSave_NotRemembered_BlanksIdentity(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Save("alice", "hunter2", false, 42, "2024-01-02 03:04:05"))

	cred, ok := v.Load()
	require.True(t, ok)
	assert.Equal(t, Credential{RememberMe: false}, cred)
}

func TestSave_RoundTrip(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Save("alice", "hunter2", true, 42, "2024-01-02 03:04:05"))

	cred, ok := v.Load()
	require.True(t, ok)
	assert.True(t, cred.RememberMe)
	assert.Equal(t, "alice", cred.Username)
	assert.Equal(t, 42, cred.UserID)
	assert.Equal(t, "2024-01-02 03:04:05", cred.UserCreatedAt)
	assert.NotEmpty(t, cred.PasswordDigest)
	assert.NotEqual(t, "hunter2", cred.PasswordDigest)
	assert.Equal(t, PasswordDigest("hunter2"), cred.PasswordDigest)
}

func TestSave_FileHasNoPlaintext(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Save("alice", "hunter2", true, 42, "2024"))

	data, err := os.ReadFile(v.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "alice")
	assert.NotContains(t, string(data), "hunter2")

	_, err = base64.StdEncoding.DecodeString(string(data))
	assert.NoError(t, err, "file content must be base64")
}

func TestSave_FreshNoncePerWrite(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Save("alice", "pw", true, 1, "x"))
	first, err := os.ReadFile(v.Path())
	require.NoError(t, err)

	require.NoError(t, v.Save("alice", "pw", true, 1, "x"))
	second, err := os.ReadFile(v.Path())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLoad_CorruptFileIsDeleted(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"not base64", []byte("%%% definitely not base64 %%%")},
		{"too short", []byte(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))},
		{"garbage ciphertext", []byte(base64.StdEncoding.EncodeToString(make([]byte, 64)))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVault(t)
			require.NoError(t, os.WriteFile(v.Path(), tt.content, 0o600))

			_, ok := v.Load()
			assert.False(t, ok)
			_, err := os.Stat(v.Path())
			assert.True(t, os.IsNotExist(err), "corrupt vault file must be removed")
		})
	}
}

func TestLoad_OtherMachineCannotRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.dat")
	require.NoError(t, New(path, WithSecret([]byte("machine-a"))).Save("alice", "pw", true, 1, "x"))

	_, ok := New(path, WithSecret([]byte("machine-b"))).Load()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestClear_Idempotent(t *testing.T) {
	v := newTestVault(t)
	require.NoError(t, v.Save("alice", "pw", true, 1, "x"))
	require.NoError(t, v.Clear())
	require.NoError(t, v.Clear())

	_, ok := v.Load()
	assert.False(t, ok)
}

func TestPasswordDigest(t *testing.T) {
	assert.Equal(t, PasswordDigest("secret"), PasswordDigest("secret"))
	assert.NotEqual(t, PasswordDigest("secret"), PasswordDigest("Secret"))
	assert.Len(t, PasswordDigest("secret"), 64)
	assert.Empty(t, PasswordDigest(""))
}

func TestMachineSecret_Stable(t *testing.T) {
	assert.Equal(t, MachineSecret(), MachineSecret())
	assert.Len(t, MachineSecret(), 32)
}
