package crypto

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b are equal in time that
// depends only on len(a), not on the position of the first differing
// byte. A length mismatch does not short-circuit: the full comparison
// still runs, against a itself, before the (constant-time) length check
// masks the result to false.
//
// This is the comparison used for HMAC tag verification. Replacing it
// with bytes.Equal would reintroduce a timing oracle.
func ConstantTimeEqual(a, b []byte) bool {
	sameLen := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))
	other := b
	if len(a) != len(b) {
		other = a
	}
	return subtle.ConstantTimeCompare(a, other)&sameLen == 1
}
