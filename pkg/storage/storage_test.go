package storage

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignerRoundTrip(t *testing.T) {
	signer := NewSigner("secret", time.Hour)
	token, expiresAt, err := signer.Sign("user-1", "avatars/user-1.png")
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	subject, key, err := signer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.Equal(t, "avatars/user-1.png", key)
}

func TestSignerRejectsTamperingAndExpiry(t *testing.T) {
	signer := NewSigner("secret", time.Minute)
	token, _, err := signer.Sign("user-1", "avatars/a.png")
	require.NoError(t, err)

	_, _, err = NewSigner("other", time.Minute).Verify(token)
	assert.ErrorIs(t, err, ErrTokenSignature)

	_, _, err = signer.Verify("garbage")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, _, err = signer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestFileStorePutOpenRemove(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	n, err := store.Put("avatars/u1.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)

	f, err := store.Open("avatars/u1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Remove("avatars/u1.png"))
	require.NoError(t, store.Remove("avatars/u1.png"))
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../etc/passwd", "/abs/path", "", "a/../../b"} {
		_, err := store.Put(key, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}
