package dilithium

// ParamSet identifies a recognised Dilithium round-3 parameter set. Buffer
// sizes for every scheme operation are derived from (k, l, d, γ1, ω) so that
// no allocation decision depends on data read at runtime.
type ParamSet int

// Recognised parameter sets, matching table 2 of the Dilithium round-3
// specification.
const (
	DIL2 ParamSet = iota
	DIL3
	DIL5
)

// String returns the canonical name of the parameter set.
func (p ParamSet) String() string {
	switch p {
	case DIL2:
		return "DIL2"
	case DIL3:
		return "DIL3"
	case DIL5:
		return "DIL5"
	default:
		return "invalid"
	}
}

// params collects the tuple (k, l, d, η, γ1, γ2, τ, β, ω) for one parameter
// set, together with the derived sizes needed to size wire encodings.
type params struct {
	k, l        int
	eta         int
	gamma1Bits  int
	gamma2      uint32
	tau         int
	beta        uint32
	omega       int
	pkSize      int
	skSize      int
	sigSize     int
	w1EncodeLen int // bytes per polynomial when packing w1 for c̃
}

// paramsFor returns the validated parameter tuple for p, or ok=false if p is
// not one of the three recognised sets.
func paramsFor(p ParamSet) (pr params, ok bool) {
	switch p {
	case DIL2:
		return params{
			k: k2, l: l2, eta: eta2, gamma1Bits: gamma1Bits17,
			gamma2: gamma2QMinus1Div88, tau: tau39, beta: beta2, omega: omega80,
			pkSize: PublicKeySizeDIL2, skSize: PrivateKeySizeDIL2, sigSize: SignatureSizeDIL2,
			w1EncodeLen: encodingSize6,
		}, true
	case DIL3:
		return params{
			k: k3, l: l3, eta: eta4, gamma1Bits: gamma1Bits19,
			gamma2: gamma2QMinus1Div32, tau: tau49, beta: beta3, omega: omega55,
			pkSize: PublicKeySizeDIL3, skSize: PrivateKeySizeDIL3, sigSize: SignatureSizeDIL3,
			w1EncodeLen: encodingSize4,
		}, true
	case DIL5:
		return params{
			k: k5, l: l5, eta: eta2, gamma1Bits: gamma1Bits19,
			gamma2: gamma2QMinus1Div32, tau: tau60, beta: beta5, omega: omega75,
			pkSize: PublicKeySizeDIL5, skSize: PrivateKeySizeDIL5, sigSize: SignatureSizeDIL5,
			w1EncodeLen: encodingSize4,
		}, true
	default:
		return params{}, false
	}
}

// checkParams validates the parameter-tuple invariants: β = τ·η and γ2 is
// one of the two allowed divisors of q-1. NewKeyDIL2/3/5 run this before
// deriving any key material, so a parameter set failing this check is
// rejected at the keygen call site rather than surfacing as a silent
// miscomputation further down the pipeline.
func checkParams(pr params) bool {
	if uint32(pr.tau)*uint32(pr.eta) != pr.beta {
		return false
	}
	if pr.gamma2 != gamma2QMinus1Div88 && pr.gamma2 != gamma2QMinus1Div32 {
		return false
	}
	return true
}
