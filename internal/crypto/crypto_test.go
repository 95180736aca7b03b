package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec([]byte("dev-only-32-byte-encryption-key!"))
	require.NoError(t, err)
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	sealed, err := codec.Encrypt("Joana Lima")
	require.NoError(t, err)
	assert.NotEqual(t, "Joana Lima", sealed)

	opened, err := codec.Decrypt(sealed)
	require.NoError(t, err)
	assert.Equal(t, "Joana Lima", opened)
}

func TestCodecCiphertextsAreNondeterministic(t *testing.T) {
	codec := newTestCodec(t)

	first, err := codec.Encrypt("joana@example.com")
	require.NoError(t, err)
	second, err := codec.Encrypt("joana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Decrypt("not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
	_, err = codec.Decrypt("c2hvcnQ=")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	other, err := NewCodec([]byte("another-32-byte-encryption-key!!"))
	require.NoError(t, err)
	sealed, err := other.Encrypt("segredo")
	require.NoError(t, err)
	_, err = codec.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}

func TestDigestIsDeterministic(t *testing.T) {
	assert.Equal(t, Digest("joana@example.com"), Digest("joana@example.com"))
	assert.NotEqual(t, Digest("joana@example.com"), Digest("maria@example.com"))
	assert.Len(t, Digest("joana@example.com"), 64)
}
