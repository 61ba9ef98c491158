package dilithium

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRingElement(r *rand.Rand) ringElement {
	var f ringElement
	for i := range f {
		f[i] = fieldElement(r.Uint32() % q)
	}
	return f
}

func TestNTTRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 20; trial++ {
		p := randomRingElement(r)
		got := invNTT(ntt(p))
		assert.Equal(t, p, got, "trial %d: intt(ntt(p)) != p", trial)
	}
}

func TestNTTMulDistributesOverPointwiseAddition(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	a := ntt(randomRingElement(r))
	b := ntt(randomRingElement(r))
	c := ntt(randomRingElement(r))

	lhs := nttMul(a, polyAdd(b, c))
	rhs := polyAdd(nttMul(a, b), nttMul(a, c))
	assert.Equal(t, rhs, lhs, "pointwise multiplication does not distribute over addition")
}

func TestDecomposeRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for _, gamma2 := range []uint32{gamma2QMinus1Div88, gamma2QMinus1Div32} {
		for trial := 0; trial < 200; trial++ {
			val := fieldElement(r.Uint32() % q)
			r1, r0 := decompose(val, gamma2)
			recon := int32(r1)*int32(gamma2)*2 + r0
			recon %= q
			if recon < 0 {
				recon += q
			}
			assert.Equal(t, val, fieldElement(recon), "gamma2=%d", gamma2)
		}
	}
}

func TestPower2RoundRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for trial := 0; trial < 200; trial++ {
		val := fieldElement(r.Uint32() % q)
		r1, r0 := power2Round(val)
		recon := fieldAdd(fieldElement(uint32(r1)<<d%q), r0)
		assert.Equal(t, val, recon)
	}
}

func TestHintRoundtrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for _, gamma2 := range []uint32{gamma2QMinus1Div88, gamma2QMinus1Div32} {
		for trial := 0; trial < 200; trial++ {
			rr := fieldElement(r.Uint32() % q)
			// z is drawn from [-gamma2, gamma2], the range over which the
			// hint identity holds.
			z := fieldSub(fieldElement(r.Uint32()%(2*gamma2+1)), fieldElement(gamma2))

			h := makeHint(z, rr, gamma2)
			want := highBits(fieldAdd(rr, z), gamma2)
			got := useHint(h, rr, gamma2)
			assert.Equal(t, want, uint32(got), "gamma2=%d: UseHint(MakeHint(z,r), r) should equal HighBits(r+z)", gamma2)
		}
	}
}

func TestBitPackRoundtripEta(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	var f ringElement
	for i := range f {
		f[i] = fieldSub(2, fieldElement(r.Intn(5)))
	}
	b := packEta2(f)
	got, err := unpackEta2(b)
	require.NoError(t, err)
	assert.Equal(t, f, got, "packEta2/unpackEta2 are not mutual inverses")

	var g ringElement
	for i := range g {
		g[i] = fieldSub(4, fieldElement(r.Intn(9)))
	}
	b4 := packEta4(g)
	got4, err := unpackEta4(b4)
	require.NoError(t, err)
	assert.Equal(t, g, got4, "packEta4/unpackEta4 are not mutual inverses")
}

func TestBitPackRoundtripT1T0(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	var t1 ringElement
	for i := range t1 {
		t1[i] = fieldElement(r.Intn(1 << 10))
	}
	assert.Equal(t, t1, unpackT1(packT1(t1)), "packT1/unpackT1 are not mutual inverses")

	var t0 ringElement
	for i := range t0 {
		t0[i] = fieldSub(1<<12, fieldElement(r.Intn(1<<13)))
	}
	assert.Equal(t, t0, unpackT0(packT0(t0)), "packT0/unpackT0 are not mutual inverses")
}

func TestBitPackRoundtripZ(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	var z17 ringElement
	for i := range z17 {
		z17[i] = fieldSub(1<<17, fieldElement(r.Intn(1<<18)))
	}
	assert.Equal(t, z17, unpackZ17Sig(packZ17(z17)), "packZ17/unpackZ17 are not mutual inverses")

	var z19 ringElement
	for i := range z19 {
		z19[i] = fieldSub(1<<19, fieldElement(r.Intn(1<<20)))
	}
	assert.Equal(t, z19, unpackZ19Sig(packZ19(z19)), "packZ19/unpackZ19 are not mutual inverses")
}

func TestHintEncodeDecodeRoundtrip(t *testing.T) {
	hints := make([]ringElement, k2)
	hints[0][3] = 1
	hints[0][200] = 1
	hints[2][0] = 1

	b := packHint(hints, omega80)
	decoded := make([]ringElement, k2)
	require.True(t, unpackHint(b, decoded, omega80), "unpackHint reported failure on a validly encoded hint vector")
	for i := range hints {
		assert.Equal(t, hints[i], decoded[i], "polynomial %d mismatches after hint roundtrip", i)
	}
}

func TestHintDecodeRejectsDecreasingRunningCount(t *testing.T) {
	hints := make([]ringElement, k2)
	hints[0][5] = 1
	b := packHint(hints, omega80)

	// Force the running count for polynomial 1 below the count for
	// polynomial 0, producing a non-monotonic sequence.
	b[omega80+0] = 1
	b[omega80+1] = 0

	decoded := make([]ringElement, k2)
	assert.False(t, unpackHint(b, decoded, omega80), "unpackHint accepted a decreasing running-count sequence")
}

func TestParamsForKnownSets(t *testing.T) {
	for _, p := range []ParamSet{DIL2, DIL3, DIL5} {
		pr, ok := paramsFor(p)
		require.True(t, ok, "paramsFor(%s) reported unrecognised", p)
		assert.True(t, checkParams(pr), "paramsFor(%s) violates beta=tau*eta or the gamma2 invariant", p)
	}
}

func TestParamsForUnknownSet(t *testing.T) {
	_, ok := paramsFor(ParamSet(99))
	assert.False(t, ok, "paramsFor accepted an unrecognised parameter set")
}
