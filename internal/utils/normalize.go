package utils

import (
	"strconv"
	"strings"
)

// CreateRankList returns 1..count, the display rank of an already sorted list.
func CreateRankList(count int) []uint16 {
	ranks := make([]uint16, max(count, 0))
	for i := range ranks {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// FormatWithCommas renders n with thousands separators, e.g. 12,345.
func FormatWithCommas(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
