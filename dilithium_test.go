package dilithium

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyDIL2(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateKeyDIL3(t *testing.T) {
	key, err := GenerateKeyDIL3(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestGenerateKeyDIL5(t *testing.T) {
	key, err := GenerateKeyDIL5(rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, key)
}

func TestKeySizesDIL2(t *testing.T) {
	key, err := NewKeyDIL2(make([]byte, SeedSize))
	require.NoError(t, err)

	assert.Len(t, key.PublicKey().Bytes(), PublicKeySizeDIL2)
	assert.Len(t, key.PrivateKeyBytes(), PrivateKeySizeDIL2)
	assert.Equal(t, 1312, PublicKeySizeDIL2)
	assert.Equal(t, 2528, PrivateKeySizeDIL2)
}

func TestKeySizesDIL3(t *testing.T) {
	assert.Equal(t, 1952, PublicKeySizeDIL3)
	assert.Equal(t, 4000, PrivateKeySizeDIL3)
}

func TestKeySizesDIL5(t *testing.T) {
	assert.Equal(t, 2592, PublicKeySizeDIL5)
	assert.Equal(t, 4864, PrivateKeySizeDIL5)
}

func TestSignVerifyDIL2(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	message := []byte("hello, world!")
	sig, err := key.SignRandomized(rand.Reader, message)
	require.NoError(t, err)
	assert.Len(t, sig, SignatureSizeDIL2)

	pk := key.PublicKey()
	assert.True(t, pk.Verify(sig, message), "valid signature rejected")
	assert.False(t, pk.Verify(sig, []byte("wrong message")), "verify accepted the wrong message")

	badSig := make([]byte, len(sig))
	copy(badSig, sig)
	badSig[0] ^= 0xFF
	assert.False(t, pk.Verify(badSig, message), "verify accepted a corrupted signature")
}

func TestSignVerifyDIL3(t *testing.T) {
	key, err := GenerateKeyDIL3(rand.Reader)
	require.NoError(t, err)

	message := []byte("a somewhat longer message to sign, just to vary things")
	sig, err := key.SignRandomized(rand.Reader, message)
	require.NoError(t, err)
	assert.Len(t, sig, SignatureSizeDIL3)

	pk := key.PublicKey()
	assert.True(t, pk.Verify(sig, message))
}

func TestSignVerifyDIL5(t *testing.T) {
	key, err := GenerateKeyDIL5(rand.Reader)
	require.NoError(t, err)

	message := []byte{}
	sig, err := key.SignRandomized(rand.Reader, message)
	require.NoError(t, err)

	pk := key.PublicKey()
	assert.True(t, pk.Verify(sig, message), "verify rejected a signature over an empty message")
}

func TestSignDeterministicIsIdempotent(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	message := []byte("deterministic signing must be reproducible")
	sig1, err := key.SignDeterministic(message)
	require.NoError(t, err)
	sig2, err := key.SignDeterministic(message)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2, "two deterministic signatures over the same message differ")

	assert.True(t, key.PublicKey().Verify(sig1, message))
}

func TestCryptoSignerInterface(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	message := []byte("signed through the crypto.Signer interface")
	sig, err := key.Sign(rand.Reader, message, SignerOpts{})
	require.NoError(t, err)

	pub, ok := key.Public().(*PublicKeyDIL2)
	require.True(t, ok, "Public() did not return a *PublicKeyDIL2")
	assert.True(t, pub.Verify(sig, message))
}

func TestPublicKeyRoundtripDIL2(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	b := key.PublicKey().Bytes()
	pk, err := NewPublicKeyDIL2(b)
	require.NoError(t, err)
	assert.True(t, pk.Equal(key.PublicKey()), "decoded public key does not equal the original")

	message := []byte("encoded and decoded keys must agree")
	sig, err := key.SignRandomized(rand.Reader, message)
	require.NoError(t, err)
	assert.True(t, pk.Verify(sig, message))
}

func TestPrivateKeyRoundtripDIL2(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	b := key.PrivateKeyBytes()
	sk, err := NewPrivateKeyDIL2(b)
	require.NoError(t, err)

	message := []byte("decoded secret keys must sign the same as the original")
	sig, err := sk.SignRandomized(rand.Reader, message)
	require.NoError(t, err)
	assert.True(t, key.PublicKey().Verify(sig, message))
}

func TestNewPublicKeyDIL2RejectsBadLength(t *testing.T) {
	_, err := NewPublicKeyDIL2(make([]byte, PublicKeySizeDIL2-1))
	assert.Error(t, err)
}

func TestNewPrivateKeyDIL2RejectsBadLength(t *testing.T) {
	_, err := NewPrivateKeyDIL2(make([]byte, PrivateKeySizeDIL2+1))
	assert.Error(t, err)
}

func TestFlippedHintRunningCountFailsVerify(t *testing.T) {
	key, err := GenerateKeyDIL2(rand.Reader)
	require.NoError(t, err)

	message := []byte("hint tampering must be rejected")
	sig, err := key.SignRandomized(rand.Reader, message)
	require.NoError(t, err)

	// The running-count bytes are the last k2 bytes of the signature; forcing
	// an early one above a later one makes the sequence non-monotonic.
	tampered := make([]byte, len(sig))
	copy(tampered, sig)
	countStart := len(tampered) - k2
	tampered[countStart] = byte(omega80)
	tampered[countStart+1] = 0

	assert.False(t, key.PublicKey().Verify(tampered, message), "verify accepted a decreasing hint running count")
}
