package dilithium

// Vector and matrix operations over R_q, generalized from the per-level
// matrix/vector loops: a k×l matrix is stored row-major as k*l polynomials.

// nttVec applies the forward NTT to every polynomial in v.
func nttVec[T ~[n]fieldElement](v []T) []nttElement {
	out := make([]nttElement, len(v))
	for i := range v {
		out[i] = ntt(ringElement(v[i]))
	}
	return out
}

// inttVec applies the inverse NTT to every polynomial in v.
func inttVec(v []nttElement) []ringElement {
	out := make([]ringElement, len(v))
	for i := range v {
		out[i] = invNTT(v[i])
	}
	return out
}

// matMul computes w_i = Σ_j A_{i,j} ⊙ v_j for a k×l row-major matrix A and
// an l-length vector v, both in NTT form. Returns a k-length NTT vector.
func matMul(a []nttElement, k, l int, v []nttElement) []nttElement {
	w := make([]nttElement, k)
	for i := 0; i < k; i++ {
		var acc nttElement
		for j := 0; j < l; j++ {
			acc = polyAdd(acc, nttMul(a[i*l+j], v[j]))
		}
		w[i] = acc
	}
	return w
}

// vecAdd adds two vectors of polynomials element-wise.
func vecAdd[T ~[n]fieldElement](a, b []T) []T {
	out := make([]T, len(a))
	for i := range a {
		out[i] = polyAdd(a[i], b[i])
	}
	return out
}

// vecNeg negates every polynomial in v.
func vecNeg[T ~[n]fieldElement](v []T) []T {
	out := make([]T, len(v))
	for i := range v {
		out[i] = polyNeg(v[i])
	}
	return out
}

// scalarPolyMul multiplies every polynomial in v by the NTT-domain scalar c,
// which must itself be in NTT form; v is also assumed to already be in NTT
// form. The result is returned in NTT form.
func scalarPolyMul(c nttElement, v []nttElement) []nttElement {
	out := make([]nttElement, len(v))
	for i := range v {
		out[i] = nttMul(c, v[i])
	}
	return out
}

// shlD multiplies every coefficient of every polynomial in v by 2^d mod q;
// used in verification to reconstruct t·2^d from t1.
func shlD(v []ringElement) []ringElement {
	out := make([]ringElement, len(v))
	for i := range v {
		for j := 0; j < n; j++ {
			out[i][j] = fieldElement(uint64(v[i][j]) << d % q)
		}
	}
	return out
}
