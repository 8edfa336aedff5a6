package sourcemap

import (
	"errors"
	"fmt"
)

const (
	vlqBaseShift       = 5
	vlqBase            = 1 << vlqBaseShift
	vlqBaseMask        = vlqBase - 1
	vlqContinuationBit = vlqBase
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Values = func() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = -1
	}
	for i := range len(base64Alphabet) {
		table[base64Alphabet[i]] = int8(i)
	}
	return table
}()

var errTruncatedVLQ = errors.New("truncated VLQ value")

// appendVLQ appends the base64 VLQ encoding of value.
func appendVLQ(buf []byte, value int) []byte {
	// Sign goes in the least significant bit.
	vlq := value << 1
	if value < 0 {
		vlq = (-value << 1) | 1
	}

	for {
		digit := vlq & vlqBaseMask
		vlq >>= vlqBaseShift
		if vlq > 0 {
			digit |= vlqContinuationBit
		}
		buf = append(buf, base64Alphabet[digit])
		if vlq == 0 {
			return buf
		}
	}
}

// decodeVLQ decodes one value from the front of s and returns the rest.
func decodeVLQ(s string) (int, string, error) {
	result, shift := 0, 0
	for i := range len(s) {
		digit := base64Values[s[i]]
		if digit < 0 {
			return 0, "", fmt.Errorf("invalid base64 character %q", s[i])
		}
		if shift > 60 {
			return 0, "", errors.New("VLQ value overflows")
		}

		result += int(digit&vlqBaseMask) << shift
		if digit&vlqContinuationBit == 0 {
			value := result >> 1
			if result&1 == 1 {
				value = -value
			}
			return value, s[i+1:], nil
		}
		shift += vlqBaseShift
	}
	return 0, "", errTruncatedVLQ
}
