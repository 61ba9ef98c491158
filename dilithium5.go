package dilithium

import (
	"crypto"
	"io"

	"github.com/pkg/errors"
)

// PrivateKeyDIL5 is the private key for the DIL5 parameter set.
type PrivateKeyDIL5 struct {
	rho [32]byte
	key [32]byte
	tr  [32]byte
	s1  [l5]ringElement
	s2  [k5]ringElement
	t0  [k5]ringElement
	a   [k5 * l5]nttElement
}

// PublicKeyDIL5 is the public key for the DIL5 parameter set.
type PublicKeyDIL5 struct {
	rho [32]byte
	t1  [k5]ringElement
	tr  [32]byte
	a   [k5 * l5]nttElement
}

// KeyDIL5 is a DIL5 key pair.
type KeyDIL5 struct {
	PrivateKeyDIL5
	seed [32]byte
	t1   [k5]ringElement
}

// GenerateKeyDIL5 generates a new DIL5 key pair from fresh randomness.
func GenerateKeyDIL5(rand io.Reader) (*KeyDIL5, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "dilithium: reading key generation seed")
	}
	return NewKeyDIL5(seed[:])
}

// NewKeyDIL5 deterministically derives a key pair from a 32-byte seed.
func NewKeyDIL5(seed []byte) (*KeyDIL5, error) {
	if len(seed) != SeedSize {
		return nil, errors.New("dilithium: invalid seed length")
	}
	if pr, ok := paramsFor(DIL5); !ok || !checkParams(pr) {
		return nil, errors.New("dilithium: DIL5 parameter tuple failed validation")
	}

	key := &KeyDIL5{}
	copy(key.seed[:], seed)
	key.generate()
	return key, nil
}

func (key *KeyDIL5) generate() {
	var expanded [128]byte
	newXOF256().absorb(key.seed[:]).finalize().squeeze(expanded[:])

	copy(key.rho[:], expanded[:32])
	rhoPrime := expanded[32:96]
	copy(key.key[:], expanded[96:128])

	s1, s2 := expandS(rhoPrime, eta2, k5, l5)
	copy(key.s1[:], s1)
	copy(key.s2[:], s2)

	a := expandA(key.rho[:], k5, l5)
	copy(key.a[:], a)

	s1NTT := nttVec(key.s1[:])
	t := vecAdd(inttVec(matMul(key.a[:], k5, l5, s1NTT)), key.s2[:])

	for i := 0; i < k5; i++ {
		for j := 0; j < n; j++ {
			key.t1[i][j], key.t0[i][j] = power2Round(t[i][j])
		}
	}

	pkBytes := key.publicKeyBytes()
	newXOF256().absorb(pkBytes).finalize().squeeze(key.tr[:])
}

func (key *KeyDIL5) publicKeyBytes() []byte {
	b := make([]byte, PublicKeySizeDIL5)
	copy(b[:32], key.rho[:])
	offset := 32
	for i := 0; i < k5; i++ {
		copy(b[offset:], packT1(key.t1[i]))
		offset += encodingSize10
	}
	return b
}

// PublicKey returns the public key half of the pair.
func (key *KeyDIL5) PublicKey() *PublicKeyDIL5 {
	return &PublicKeyDIL5{rho: key.rho, t1: key.t1, tr: key.tr, a: key.a}
}

// Public implements crypto.Signer, using the already-computed t1.
func (key *KeyDIL5) Public() crypto.PublicKey {
	return &PublicKeyDIL5{rho: key.rho, t1: key.t1, tr: key.tr, a: key.a}
}

// Public implements crypto.Signer by reconstructing t1 from s1, s2 and A.
func (sk *PrivateKeyDIL5) Public() crypto.PublicKey {
	s1NTT := nttVec(sk.s1[:])
	t := inttVec(matMul(sk.a[:], k5, l5, s1NTT))
	var t1 [k5]ringElement
	for i := 0; i < k5; i++ {
		t[i] = polyAdd(t[i], sk.s2[i])
		for j := 0; j < n; j++ {
			t1[i][j], _ = power2Round(t[i][j])
		}
	}
	return &PublicKeyDIL5{rho: sk.rho, t1: t1, tr: sk.tr, a: sk.a}
}

// Bytes returns the original 32-byte seed.
func (key *KeyDIL5) Bytes() []byte {
	b := make([]byte, SeedSize)
	copy(b, key.seed[:])
	return b
}

// PrivateKeyBytes returns the encoded private key.
func (key *KeyDIL5) PrivateKeyBytes() []byte {
	return key.PrivateKeyDIL5.Bytes()
}

// Bytes returns the canonical encoded private key.
func (sk *PrivateKeyDIL5) Bytes() []byte {
	b := make([]byte, PrivateKeySizeDIL5)
	copy(b[:32], sk.rho[:])
	copy(b[32:64], sk.key[:])
	copy(b[64:96], sk.tr[:])

	offset := 96
	for i := 0; i < l5; i++ {
		copy(b[offset:], packEta2(sk.s1[i]))
		offset += encodingSize3
	}
	for i := 0; i < k5; i++ {
		copy(b[offset:], packEta2(sk.s2[i]))
		offset += encodingSize3
	}
	for i := 0; i < k5; i++ {
		copy(b[offset:], packT0(sk.t0[i]))
		offset += encodingSize13
	}
	return b
}

// Bytes returns the canonical encoded public key.
func (pk *PublicKeyDIL5) Bytes() []byte {
	b := make([]byte, PublicKeySizeDIL5)
	copy(b[:32], pk.rho[:])
	offset := 32
	for i := 0; i < k5; i++ {
		copy(b[offset:], packT1(pk.t1[i]))
		offset += encodingSize10
	}
	return b
}

// Equal reports whether pk and other are the same public key.
func (pk *PublicKeyDIL5) Equal(other crypto.PublicKey) bool {
	o, ok := other.(*PublicKeyDIL5)
	if !ok {
		return false
	}
	return pk.rho == o.rho && pk.t1 == o.t1
}

// NewPublicKeyDIL5 parses an encoded DIL5 public key.
func NewPublicKeyDIL5(b []byte) (*PublicKeyDIL5, error) {
	if len(b) != PublicKeySizeDIL5 {
		return nil, errors.New("dilithium: invalid public key length")
	}

	pk := &PublicKeyDIL5{}
	copy(pk.rho[:], b[:32])

	offset := 32
	for i := 0; i < k5; i++ {
		pk.t1[i] = unpackT1(b[offset : offset+encodingSize10])
		offset += encodingSize10
	}

	copy(pk.a[:], expandA(pk.rho[:], k5, l5))
	newXOF256().absorb(b).finalize().squeeze(pk.tr[:])
	return pk, nil
}

// NewPrivateKeyDIL5 parses an encoded DIL5 private key.
func NewPrivateKeyDIL5(b []byte) (*PrivateKeyDIL5, error) {
	if len(b) != PrivateKeySizeDIL5 {
		return nil, errors.New("dilithium: invalid private key length")
	}

	sk := &PrivateKeyDIL5{}
	copy(sk.rho[:], b[:32])
	copy(sk.key[:], b[32:64])
	copy(sk.tr[:], b[64:96])

	offset := 96
	var err error
	for i := 0; i < l5; i++ {
		sk.s1[i], err = unpackEta2(b[offset : offset+encodingSize3])
		if err != nil {
			return nil, err
		}
		offset += encodingSize3
	}
	for i := 0; i < k5; i++ {
		sk.s2[i], err = unpackEta2(b[offset : offset+encodingSize3])
		if err != nil {
			return nil, err
		}
		offset += encodingSize3
	}
	for i := 0; i < k5; i++ {
		sk.t0[i] = unpackT0(b[offset : offset+encodingSize13])
		offset += encodingSize13
	}

	copy(sk.a[:], expandA(sk.rho[:], k5, l5))
	return sk, nil
}

// SignDeterministic implements sign_det: ρ′ depends only on (sk, m).
func (sk *PrivateKeyDIL5) SignDeterministic(message []byte) ([]byte, error) {
	mu := sk.computeMu(message)
	var rhoPrime [64]byte
	newXOF256().absorb(sk.key[:], mu[:]).finalize().squeeze(rhoPrime[:])
	return sk.signInternal(rhoPrime[:], mu)
}

// SignRandomized implements sign_rand: ρ′ is the caller-supplied external seed.
func (sk *PrivateKeyDIL5) SignRandomized(rand io.Reader, message []byte) ([]byte, error) {
	var seed [64]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, errors.Wrap(err, "dilithium: reading randomized signing seed")
	}
	mu := sk.computeMu(message)
	return sk.signInternal(seed[:], mu)
}

// Sign implements crypto.Signer, signing randomized with rand as the source
// of ρ′.
func (sk *PrivateKeyDIL5) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, errors.New("dilithium: cannot sign a pre-hashed digest")
	}
	return sk.SignRandomized(rand, message)
}

// SignMessage implements crypto.MessageSigner (Go 1.25+).
func (sk *PrivateKeyDIL5) SignMessage(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return sk.Sign(rand, message, opts)
}

func (sk *PrivateKeyDIL5) computeMu(message []byte) [64]byte {
	var mu [64]byte
	newXOF256().absorb(sk.tr[:], message).finalize().squeeze(mu[:])
	return mu
}

func (sk *PrivateKeyDIL5) signInternal(rhoPrime []byte, mu [64]byte) ([]byte, error) {
	s1NTT := nttVec(sk.s1[:])
	s2NTT := nttVec(sk.s2[:])
	t0NTT := nttVec(sk.t0[:])

	maskXOF := newXOF256()
	commitXOF := newXOF256()
	challengeXOF := newXOF256()

	for kappa := uint16(0); ; kappa += l5 {
		y := expandMask(maskXOF, rhoPrime, kappa, l5, gamma1Bits19)
		yNTT := nttVec(y)
		w := inttVec(matMul(sk.a[:], k5, l5, yNTT))

		var w1 [k5]ringElement
		for i := 0; i < k5; i++ {
			for j := 0; j < n; j++ {
				w1[i][j] = fieldElement(highBits(w[i][j], gamma2QMinus1Div32))
			}
		}

		commitXOF.reset()
		commitXOF.absorb(mu[:])
		for i := 0; i < k5; i++ {
			commitXOF.absorb(packW1_4(w1[i]))
		}
		var cTilde [cTildeSize]byte
		commitXOF.finalize().squeeze(cTilde[:])

		c := sampleChallenge(challengeXOF, cTilde[:], tau60)
		cNTT := ntt(c)

		cs1 := inttVec(scalarPolyMul(cNTT, s1NTT))
		z := vecAdd(y, cs1)
		if vectorInfinityNorm(z) >= gamma1Pow19-beta5 {
			continue
		}

		cs2 := inttVec(scalarPolyMul(cNTT, s2NTT))
		wMinusCs2 := vecAdd(w, vecNeg(cs2))

		var r0 [k5][n]int32
		for i := 0; i < k5; i++ {
			for j := 0; j < n; j++ {
				_, r0[i][j] = decompose(wMinusCs2[i][j], gamma2QMinus1Div32)
			}
		}
		if vectorInfinityNormSigned(r0[:]) >= int32(gamma2QMinus1Div32-beta5) {
			continue
		}

		ct0 := inttVec(scalarPolyMul(cNTT, t0NTT))
		if vectorInfinityNorm(ct0) >= gamma2QMinus1Div32 {
			continue
		}

		r := vecAdd(wMinusCs2, ct0)
		negCt0 := vecNeg(ct0)
		hints := make([]ringElement, k5)
		for i := 0; i < k5; i++ {
			for j := 0; j < n; j++ {
				hints[i][j] = makeHint(negCt0[i][j], r[i][j], gamma2QMinus1Div32)
			}
		}
		if countOnes(hints) > omega75 {
			continue
		}

		sig := make([]byte, SignatureSizeDIL5)
		copy(sig[:cTildeLen], cTilde[:])
		offset := cTildeLen
		for i := 0; i < l5; i++ {
			copy(sig[offset:], packZ19(z[i]))
			offset += encodingSize20
		}
		copy(sig[offset:], packHint(hints, omega75))
		return sig, nil
	}
}

// Verify checks sig over message against pk.
func (pk *PublicKeyDIL5) Verify(sig, message []byte) bool {
	if len(sig) != SignatureSizeDIL5 {
		return false
	}

	var mu [64]byte
	newXOF256().absorb(pk.tr[:], message).finalize().squeeze(mu[:])

	cTilde := sig[:cTildeLen]
	offset := cTildeLen

	z := make([]ringElement, l5)
	for i := 0; i < l5; i++ {
		z[i] = unpackZ19Sig(sig[offset : offset+encodingSize20])
		offset += encodingSize20
	}
	if vectorInfinityNorm(z) >= gamma1Pow19-beta5 {
		return false
	}

	hints := make([]ringElement, k5)
	if !unpackHint(sig[offset:], hints, omega75) {
		return false
	}

	c := sampleChallenge(newXOF256(), cTilde, tau60)
	cNTT := ntt(c)
	zNTT := nttVec(z)

	t1Scaled := shlD(pk.t1[:])
	t1NTT := nttVec(t1Scaled)

	azNTT := matMul(pk.a[:], k5, l5, zNTT)
	w1 := make([]ringElement, k5)
	for i := 0; i < k5; i++ {
		acc := polySub(azNTT[i], nttMul(cNTT, t1NTT[i]))
		wApprox := invNTT(acc)
		for j := 0; j < n; j++ {
			w1[i][j] = useHint(hints[i][j], wApprox[j], gamma2QMinus1Div32)
		}
	}

	x := newXOF256().absorb(mu[:])
	for i := 0; i < k5; i++ {
		x.absorb(packW1_4(w1[i]))
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
func (key *KeyDIL5) Sign(rand io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	return key.PrivateKeyDIL5.Sign(rand, message, opts)
}
