// Package dilithium implements the core of the CRYSTALS-Dilithium
// post-quantum digital signature scheme (round-3 parameter sets), operating
// over the ring R_q = Z_q[X]/(X^256+1) with q = 8380417.
//
// Three security levels are supported, matching table 2 of the Dilithium
// round-3 specification:
//   - DIL2: NIST security level 2
//   - DIL3: NIST security level 3
//   - DIL5: NIST security level 5
//
// Basic usage:
//
//	key, err := dilithium.GenerateKeyDIL2(rand.Reader)
//	if err != nil {
//	    // handle error
//	}
//	sig, err := key.Sign(rand.Reader, message, nil)
//	if err != nil {
//	    // handle error
//	}
//	valid := key.PublicKey().Verify(sig, message)
package dilithium

import "crypto"

// Global Dilithium constants from round-3 of the specification.
const (
	// n is the number of coefficients in polynomials.
	n = 256

	// q is the modulus: q = 2^23 - 2^13 + 1 = 8380417
	q = 8380417

	// d is the number of dropped bits from t.
	d = 13

	// SeedSize is the size of the random seed used for key generation.
	SeedSize = 32

	// cTildeSize is the byte length of the challenge hash c̃. Round-3
	// fixes this at 32 bytes for every parameter set (unlike the later
	// FIPS 204 draft, which scales it with λ).
	cTildeSize = 32
)

// Derived constants.
const (
	qMinus1Div2 = (q - 1) / 2
)

// Security level specific constants.
const (
	// gamma2 values for different modes
	gamma2QMinus1Div88 = (q - 1) / 88 // DIL2
	gamma2QMinus1Div32 = (q - 1) / 32 // DIL3, DIL5

	// gamma1 values (coefficient range of y)
	gamma1Bits17 = 17
	gamma1Bits19 = 19
	gamma1Pow17  = 1 << gamma1Bits17 // DIL2
	gamma1Pow19  = 1 << gamma1Bits19 // DIL3, DIL5

	// eta values (private key coefficient range)
	eta2 = 2 // DIL2, DIL5
	eta4 = 4 // DIL3

	// tau values (number of ±1s in challenge polynomial)
	tau39 = 39 // DIL2
	tau49 = 49 // DIL3
	tau60 = 60 // DIL5

	// omega values (max number of 1s in hint)
	omega80 = 80 // DIL2
	omega55 = 55 // DIL3
	omega75 = 75 // DIL5
)

// DIL2 parameters.
const (
	k2 = 4
	l2 = 4

	beta2 = eta2 * tau39

	PublicKeySizeDIL2  = 32 + k2*n*10/8
	PrivateKeySizeDIL2 = 96 + (k2+l2)*n*3/8 + k2*n*13/8
	SignatureSizeDIL2  = cTildeSize + l2*n*18/8 + omega80 + k2
)

// DIL3 parameters.
const (
	k3 = 6
	l3 = 5

	beta3 = eta4 * tau49

	PublicKeySizeDIL3  = 32 + k3*n*10/8
	PrivateKeySizeDIL3 = 96 + (k3+l3)*n*4/8 + k3*n*13/8
	SignatureSizeDIL3  = cTildeSize + l3*n*20/8 + omega55 + k3
)

// DIL5 parameters.
const (
	k5 = 8
	l5 = 7

	beta5 = eta2 * tau60

	PublicKeySizeDIL5  = 32 + k5*n*10/8
	PrivateKeySizeDIL5 = 96 + (k5+l5)*n*3/8 + k5*n*13/8
	SignatureSizeDIL5  = cTildeSize + l5*n*20/8 + omega75 + k5
)

// Encoding size constants (bytes per polynomial).
const (
	encodingSize3  = n * 3 / 8  // eta=2 packed
	encodingSize4  = n * 4 / 8  // eta=4 packed or 4-bit w1
	encodingSize6  = n * 6 / 8  // 6-bit w1 for DIL2
	encodingSize10 = n * 10 / 8 // t1 packed
	encodingSize13 = n * 13 / 8 // t0 packed
	encodingSize18 = n * 18 / 8 // z for gamma1=2^17
	encodingSize20 = n * 20 / 8 // z for gamma1=2^19
)

// SignerOpts implements crypto.SignerOpts for Dilithium signing operations.
type SignerOpts struct{}

// HashFunc returns 0 to indicate that Dilithium does not use pre-hashing;
// it signs the message directly rather than a message digest.
func (SignerOpts) HashFunc() crypto.Hash {
	return 0
}

// Compile-time interface assertions for crypto.Signer.
var (
	_ crypto.Signer = (*PrivateKeyDIL2)(nil)
	_ crypto.Signer = (*PrivateKeyDIL3)(nil)
	_ crypto.Signer = (*PrivateKeyDIL5)(nil)
)
