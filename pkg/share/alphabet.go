package share

import "fmt"

// Alphabet is the fixed symbol set used for share tokens. Every symbol is
// safe in a URL fragment without escaping. The symbol order and length are
// frozen: changing either would invalidate every previously issued link.
// The base of the digit conversion below is derived from the alphabet's
// length, never hardcoded.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.~/:@!$&'()*+,;="

var alphabetIndex = func() [256]int16 {
	var idx [256]int16
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		idx[Alphabet[i]] = int16(i)
	}
	return idx
}()

// encodeAlphabet maps data into the token alphabet using big-integer base
// conversion. Leading zero bytes become leading first symbols so the mapping
// is exactly reversible.
func encodeAlphabet(data []byte) string {
	base := len(Alphabet)
	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	// digits are little-endian, least significant first
	digits := make([]int16, 0, len(data)*5/4+1)
	for _, b := range data[zeros:] {
		carry := int(b)
		for i := range digits {
			carry += int(digits[i]) << 8
			digits[i] = int16(carry % base)
			carry /= base
		}
		for carry > 0 {
			digits = append(digits, int16(carry%base))
			carry /= base
		}
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, Alphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, Alphabet[digits[i]])
	}
	return string(out)
}

// decodeAlphabet inverts encodeAlphabet. Any symbol outside the alphabet is
// an error.
func decodeAlphabet(s string) ([]byte, error) {
	base := len(Alphabet)
	zeros := 0
	for zeros < len(s) && s[zeros] == Alphabet[0] {
		zeros++
	}

	// bytes are little-endian base-256
	bytes := make([]byte, 0, len(s)*5/4+1)
	for i := zeros; i < len(s); i++ {
		d := alphabetIndex[s[i]]
		if d < 0 {
			return nil, fmt.Errorf("invalid token symbol %q at position %d", s[i], i)
		}
		carry := int(d)
		for j := range bytes {
			carry += int(bytes[j]) * base
			bytes[j] = byte(carry & 0xff)
			carry >>= 8
		}
		for carry > 0 {
			bytes = append(bytes, byte(carry&0xff))
			carry >>= 8
		}
	}

	out := make([]byte, 0, zeros+len(bytes))
	for i := 0; i < zeros; i++ {
		out = append(out, 0)
	}
	for i := len(bytes) - 1; i >= 0; i-- {
		out = append(out, bytes[i])
	}
	return out, nil
}
