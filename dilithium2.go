package dilithium

import (
	"crypto"
	"io"

	"github.com/pkg/errors"
)

// PrivateKeyDIL2 is the private key for the DIL2 parameter set.
type PrivateKeyDIL2 struct {
	rho [32]byte          // Public seed
	key [32]byte          // Private seed for signing
	tr  [32]byte           // SHAKE-256(pk, 32)
	s1  [l2]ringElement    // Secret vector, length l
	s2  [k2]ringElement    // Secret vector, length k
	t0  [k2]ringElement    // Low bits of t
	a   [k2 * l2]nttElement // Matrix A in NTT form
}

// PublicKeyDIL2 is the public key for the DIL2 parameter set.
type PublicKeyDIL2 struct {
	rho [32]byte
	t1  [k2]ringElement
	tr  [32]byte
	a   [k2 * l2]nttElement
}

// KeyDIL2 is a DIL2 key pair.
type KeyDIL2 struct {
	PrivateKeyDIL2
	seed [32]byte
	t1   [k2]ringElement
}

// GenerateKeyDIL2 generates a new DIL2 key pair from fresh randomness.
func GenerateKeyDIL2(rand io.Reader) (*KeyDIL2, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "dilithium: reading key generation seed")
	}
	return NewKeyDIL2(seed[:])
}

// NewKeyDIL2 deterministically derives a key pair from a 32-byte seed.
func NewKeyDIL2(seed []byte) (*KeyDIL2, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("dilithium: invalid seed length")
	}
	if pr, ok := paramsFor(DIL2); !ok || !checkParams(pr) {
		return nil, errors.New("dilithium: DIL2 parameter tuple failed validation")
	}

	key := &KeyDIL2{}
	copy(key.seed[:], seed)
	key.generate()
	return key, nil
}

func (key *KeyDIL2) generate() {
	var expanded [128]byte
	newXOF256().absorb(key.seed[:]).finalize().squeeze(expanded[:])

	copy(key.rho[:], expanded[:32])
	rhoPrime := expanded[32:96]
	copy(key.key[:], expanded[96:128])

	s1, s2 := expandS(rhoPrime, eta2, k2, l2)
	copy(key.s1[:], s1)
	copy(key.s2[:], s2)

	a := expandA(key.rho[:], k2, l2)
	copy(key.a[:], a)

	s1NTT := nttVec(key.s1[:])
	t := vecAdd(inttVec(matMul(key.a[:], k2, l2, s1NTT)), key.s2[:])

	for i := 0; i < k2; i++ {
		for j := 0; j < n; j++ {
			key.t1[i][j], key.t0[i][j] = power2Round(t[i][j])
		}
	}

	pkBytes := key.publicKeyBytes()
	newXOF256().absorb(pkBytes).finalize().squeeze(key.tr[:])
}

func (key *KeyDIL2) publicKeyBytes() []byte {
	b := make([]byte, PublicKeySizeDIL2)
	copy(b[:32], key.rho[:])
	offset := 32
	for i := 0; i < k2; i++ {
		copy(b[offset:], packT1(key.t1[i]))
		offset += encodingSize10
	}
	return b
}

// PublicKey returns the public key half of the pair.
func (key *KeyDIL2) PublicKey() *PublicKeyDIL2 {
	return &PublicKeyDIL2{rho: key.rho, t1: key.t1, tr: key.tr, a: key.a}
}

// Public implements crypto.Signer.
func (sk *PrivateKeyDIL2) Public() crypto.PublicKey {
	return &PublicKeyDIL2{rho: sk.rho, t1: sk.t1computed(), tr: sk.tr, a: sk.a}
}

// t1computed reconstructs t1 from s1, s2 and A; only needed when a
// PrivateKeyDIL2 was built directly via NewPrivateKeyDIL2 rather than
// through KeyDIL2, which already carries t1 alongside it.
func (sk *PrivateKeyDIL2) t1computed() [k2]ringElement {
	s1NTT := nttVec(sk.s1[:])
	t := inttVec(matMul(sk.a[:], k2, l2, s1NTT))
	var t1 [k2]ringElement
	for i := 0; i < k2; i++ {
		t[i] = polyAdd(t[i], sk.s2[i])
		for j := 0; j < n; j++ {
			t1[i][j], _ = power2Round(t[i][j])
		}
	}
	return t1
}

// Bytes returns the original 32-byte seed.
func (key *KeyDIL2) Bytes() []byte {
	b := make([]byte, SeedSize)
	copy(b, key.seed[:])
	return b
}

// PrivateKeyBytes returns the encoded private key.
func (key *KeyDIL2) PrivateKeyBytes() []byte {
	return key.PrivateKeyDIL2.Bytes()
}

// Bytes returns the canonical encoded private key: ρ‖K‖tr‖BitPack(η-s1)‖BitPack(η-s2)‖BitPack(2^(d-1)-t0).
func (sk *PrivateKeyDIL2) Bytes() []byte {
	b := make([]byte, PrivateKeySizeDIL2)
	copy(b[:32], sk.rho[:])
	copy(b[32:64], sk.key[:])
	copy(b[64:96], sk.tr[:])

	offset := 96
	for i := 0; i < l2; i++ {
		copy(b[offset:], packEta2(sk.s1[i]))
		offset += encodingSize3
	}
	for i := 0; i < k2; i++ {
		copy(b[offset:], packEta2(sk.s2[i]))
		offset += encodingSize3
	}
	for i := 0; i < k2; i++ {
		copy(b[offset:], packT0(sk.t0[i]))
		offset += encodingSize13
	}
	return b
}

// Bytes returns the canonical encoded public key: ρ‖BitPack(t1, 10 bits).
func (pk *PublicKeyDIL2) Bytes() []byte {
	b := make([]byte, PublicKeySizeDIL2)
	copy(b[:32], pk.rho[:])
	offset := 32
	for i := 0; i < k2; i++ {
		copy(b[offset:], packT1(pk.t1[i]))
		offset += encodingSize10
	}
	return b
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKeyDIL2) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKeyDIL2)
	if !ok {
		return false
	}
	return pk.rho == o.rho && pk.t1 == o.t1
}

// NewPublicKeyDIL2 parses an encoded DIL2 public key.
func NewPublicKeyDIL2(b []byte) (*PublicKeyDIL2, error) {
	if len(b) != PublicKeySizeDIL2 {
		return nil, errors.New("dilithium: invalid public key length")
	}

	pk := &PublicKeyDIL2{}
	copy(pk.rho[:], b[:32])

	offset := 32
	for i := 0; i < k2; i++ {
		pk.t1[i] = unpackT1(b[offset : offset+encodingSize10])
		offset += encodingSize10
	}

	copy(pk.a[:], expandA(pk.rho[:], k2, l2))
	newXOF256().absorb(b).finalize().squeeze(pk.tr[:])
	return pk, nil
}

// NewPrivateKeyDIL2 parses an encoded DIL2 private key.
func NewPrivateKeyDIL2(b []byte) (*PrivateKeyDIL2, error) {
	if len(b) != PrivateKeySizeDIL2 {
		return nil, errors.New("dilithium: invalid private key length")
	}

	sk := &PrivateKeyDIL2{}
	copy(sk.rho[:], b[:32])
	copy(sk.key[:], b[32:64])
	copy(sk.tr[:], b[64:96])

	offset := 96
	var err error
	for i := 0; i < l2; i++ {
		sk.s1[i], err = unpackEta2(b[offset : offset+encodingSize3])
		if err != nil {
			return nil, err
		}
		offset += encodingSize3
	}
	for i := 0; i < k2; i++ {
		sk.s2[i], err = unpackEta2(b[offset : offset+encodingSize3])
		if err != nil {
			return nil, err
		}
		offset += encodingSize3
	}
	for i := 0; i < k2; i++ {
		sk.t0[i] = unpackT0(b[offset : offset+encodingSize13])
		offset += encodingSize13
	}

	copy(sk.a[:], expandA(sk.rho[:], k2, l2))
	return sk, nil
}

// SignDeterministic implements sign_det: ρ′ depends only on (sk, m).
func (sk *PrivateKeyDIL2) SignDeterministic(message []byte) ([]byte, error) {
	mu := sk.computeMu(message)
	var rhoPrime [64]byte
	newXOF256().absorb(sk.key[:], mu[:]).finalize().squeeze(rhoPrime[:])
	return sk.signInternal(rhoPrime[:], mu)
}

// SignRandomized implements sign_rand: ρ′ is the caller-supplied external seed.
func (sk *PrivateKeyDIL2) SignRandomized(rand io.Reader, message []byte) ([]byte, error) {
	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "dilithium: reading randomized signing seed")
	}
	mu := sk.computeMu(message)
	return sk.signInternal(seed[:], mu)
}

// Sign implements crypto.Signer. The digest argument is the raw message
// (Dilithium signs messages directly; HashFunc reports crypto.Hash(0)).
// Signing is randomized, using rand as the source of ρ′.
func (sk *PrivateKeyDIL2) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, errors.New("dilithium: cannot sign a pre-hashed digest")
	}
	return sk.SignRandomized(rand, message)
}

// SignMessage implements crypto.MessageSigner (Go 1.25+): Dilithium always
// signs the message directly, so this is equivalent to Sign.
func (sk *PrivateKeyDIL2) SignMessage(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return sk.Sign(rand, message, opts)
}

func (sk *PrivateKeyDIL2) computeMu(message []byte) [64]byte {
	var mu [64]byte
	newXOF256().absorb(sk.tr[:], message).finalize().squeeze(mu[:])
	return mu
}

func (sk *PrivateKeyDIL2) signInternal(rhoPrime []byte, mu [64]byte) ([]byte, error) {
	s1NTT := nttVec(sk.s1[:])
	s2NTT := nttVec(sk.s2[:])
	t0NTT := nttVec(sk.t0[:])

	maskXOF := newXOF256()
	commitXOF := newXOF256()
	challengeXOF := newXOF256()

	for kappa := uint16(0); ; kappa += l2 {
		y := expandMask(maskXOF, rhoPrime, kappa, l2, gamma1Bits17)
		yNTT := nttVec(y)
		w := inttVec(matMul(sk.a[:], k2, l2, yNTT))

		var w1 [k2]ringElement
		for i := 0; i < k2; i++ {
			for j := 0; j < n; j++ {
				w1[i][j] = fieldElement(highBits(w[i][j], gamma2QMinus1Div88))
			}
		}

		commitXOF.reset()
		commitXOF.absorb(mu[:])
		for i := 0; i < k2; i++ {
			commitXOF.absorb(packW1_6(w1[i]))
		}
		var cTilde [cTildeSize]byte
		commitXOF.finalize().squeeze(cTilde[:])

		c := sampleChallenge(challengeXOF, cTilde[:], tau39)
		cNTT := ntt(c)

		cs1 := inttVec(scalarPolyMul(cNTT, s1NTT))
		z := vecAdd(y, cs1)
		if vectorInfinityNorm(z) >= gamma1Pow17-beta2 {
			continue
		}

		cs2 := inttVec(scalarPolyMul(cNTT, s2NTT))
		wMinusCs2 := vecAdd(w, vecNeg(cs2))

		var r0 [k2][n]int32
		for i := 0; i < k2; i++ {
			for j := 0; j < n; j++ {
				_, r0[i][j] = decompose(wMinusCs2[i][j], gamma2QMinus1Div88)
			}
		}
		if vectorInfinityNormSigned(r0[:]) >= int32(gamma2QMinus1Div88-beta2) {
			continue
		}

		ct0 := inttVec(scalarPolyMul(cNTT, t0NTT))
		if vectorInfinityNorm(ct0) >= gamma2QMinus1Div88 {
			continue
		}

		r := vecAdd(wMinusCs2, ct0)
		negCt0 := vecNeg(ct0)
		hints := make([]ringElement, k2)
		for i := 0; i < k2; i++ {
			for j := 0; j < n; j++ {
				hints[i][j] = makeHint(negCt0[i][j], r[i][j], gamma2QMinus1Div88)
			}
		}
		if countOnes(hints) > omega80 {
			continue
		}

		sig := make([]byte, SignatureSizeDIL2)
		copy(sig[:cTildeLen], cTilde[:])
		offset := cTildeLen
		for i := 0; i < l2; i++ {
			copy(sig[offset:], packZ17(z[i]))
			offset += encodingSize18
		}
		copy(sig[offset:], packHint(hints, omega80))
		return sig, nil
	}
}

// Verify checks sig over message against pk.
func (pk *PublicKeyDIL2) Verify(sig, message []byte) bool {
	if len(sig) != SignatureSizeDIL2 {
		return false
	}

	var mu [64]byte
	newXOF256().absorb(pk.tr[:], message).finalize().squeeze(mu[:])

	cTilde := sig[:cTildeLen]
	offset := cTildeLen

	z := make([]ringElement, l2)
	for i := 0; i < l2; i++ {
		z[i] = unpackZ17Sig(sig[offset : offset+encodingSize18])
		offset += encodingSize18
	}
	if vectorInfinityNorm(z) >= gamma1Pow17-beta2 {
		return false
	}

	hints := make([]ringElement, k2)
	if !unpackHint(sig[offset:], hints, omega80) {
		return false
	}

	c := sampleChallenge(newXOF256(), cTilde, tau39)
	cNTT := ntt(c)
	zNTT := nttVec(z)

	t1Scaled := shlD(pk.t1[:])
	t1NTT := nttVec(t1Scaled)

	azNTT := matMul(pk.a[:], k2, l2, zNTT)
	w1 := make([]ringElement, k2)
	for i := 0; i < k2; i++ {
		acc := polySub(azNTT[i], nttMul(cNTT, t1NTT[i]))
		wApprox := invNTT(acc)
		for j := 0; j < n; j++ {
			w1[i][j] = useHint(hints[i][j], wApprox[j], gamma2QMinus1Div88)
		}
	}

	x := newXOF256().absorb(mu[:])
	for i := 0; i < k2; i++ {
		x.absorb(packW1_6(w1[i]))
	}
	var cTildeCheck [cTildeLen]byte
	x.finalize().squeeze(cTildeCheck[:])

	var diff byte
	for i := range cTilde {
		diff |= cTilde[i] ^ cTildeCheck[i]
	}
	return diff == 0
}

// Sign creates a randomized signature using the key pair.
func (key *KeyDIL2) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return key.PrivateKeyDIL2.Sign(rand, message, opts)
}

// Public returns the public half of the pair, using the t1 already computed
// during key generation rather than recomputing it from s1, s2 and A.
func (key *KeyDIL2) Public() crypto.PublicKey {
	return &PublicKeyDIL2{rho: key.rho, t1: key.t1, tr: key.tr, a: key.a}
}

const cTildeLen = cTildeSize
