package phonetic

import "strings"

// DisplayDelimiter joins rendered phones.
const DisplayDelimiter = "·"

// SubscriptStress rewrites a trailing stress digit as a subscript, AE1 -> AE₁.
func SubscriptStress(phone string) string {
	s := Stress(phone)
	if s == StressNone {
		return phone
	}
	return phone[:len(phone)-1] + string(rune(0x2080+s))
}

// Render joins phones with DisplayDelimiter after subscripting stress.
func Render(phones []string) string {
	out := make([]string, len(phones))
	for i, p := range phones {
		out[i] = SubscriptStress(p)
	}
	return strings.Join(out, DisplayDelimiter)
}
