package schedule

import "strings"

// NaturalLess compares strings treating runs of digits as numbers, so
// "B2" < "B10". Other runs compare case-insensitively.
func NaturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, restA := chunk(a)
		cb, restB := chunk(b)
		if c := compareChunk(ca, cb); c != 0 {
			return c < 0
		}
		a, b = restA, restB
	}
	return a == "" && b != ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (string, string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func compareChunk(a, b string) int {
	if isDigit(a[0]) && isDigit(b[0]) {
		ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
		return len(a) - len(b) // fewer leading zeros first
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
