package dilithium

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// xof is a thin wrapper around a SHAKE extendable-output function exposing
// the absorb/finalize/squeeze lifecycle used throughout sampling. Most
// callers start a fresh instance, absorb a fixed sequence of byte strings,
// then squeeze as many bytes as they need; a caller that repeats the same
// absorb/squeeze shape across many iterations (the κ-retry loop in
// signInternal) instead holds one instance and calls reset between
// iterations. The underlying golang.org/x/crypto/sha3 ShakeHash finalizes
// implicitly on first Read, so "finalize" here is a naming seam rather than
// a distinct operation.
type xof struct {
	h sha3.ShakeHash
}

// newXOF128 starts a fresh SHAKE-128 instance.
func newXOF128() *xof {
	return &xof{h: sha3.NewShake128()}
}

// newXOF256 starts a fresh SHAKE-256 instance.
func newXOF256() *xof {
	return &xof{h: sha3.NewShake256()}
}

// absorb appends data to the XOF's input; may be called multiple times.
func (x *xof) absorb(data ...[]byte) *xof {
	for _, d := range data {
		x.h.Write(d)
	}
	return x
}

// absorbNonce16 absorbs a 16-bit little-endian nonce.
func (x *xof) absorbNonce16(nonce uint16) *xof {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], nonce)
	return x.absorb(b[:])
}

// finalize is a no-op seam: the wrapped ShakeHash pads and transitions to
// squeezing automatically on the first squeeze call.
func (x *xof) finalize() *xof {
	return x
}

// squeeze reads exactly len(out) bytes from the XOF.
func (x *xof) squeeze(out []byte) {
	x.h.Read(out)
}

// reset clears absorbed state so the instance can be reused for a fresh
// absorb/squeeze cycle without reallocating.
func (x *xof) reset() {
	x.h.Reset()
}
