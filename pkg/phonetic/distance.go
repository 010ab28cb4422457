package phonetic

import "math"

// Unmatchable is the distance between phones that may never be paired.
// Sums saturate at Unmatchable instead of overflowing.
const Unmatchable = math.MaxInt32

// Phone distances returned by PhoneDistance.
const (
	DistanceIdentical = 0
	DistanceStress    = 1
	DistanceConsonant = 2
	DistanceVowel     = 4
)

// PhonePair is an unordered pair of stressless phones.
type PhonePair [2]string

// NearMissTable holds phone pairs close enough to tolerate in a match.
type NearMissTable map[PhonePair]struct{}

// NewNearMissTable builds a table from pairs; lookups ignore pair order.
func NewNearMissTable(pairs ...PhonePair) NearMissTable {
	t := make(NearMissTable, len(pairs))
	for _, p := range pairs {
		t[p] = struct{}{}
	}
	return t
}

// Contains reports whether a and b form a near-miss in either order.
func (t NearMissTable) Contains(a, b string) bool {
	if _, ok := t[PhonePair{a, b}]; ok {
		return true
	}
	_, ok := t[PhonePair{b, a}]
	return ok
}

// DefaultNearMissVowels pairs vowels that only match at equal stress.
var DefaultNearMissVowels = NewNearMissTable(
	PhonePair{"AA", "EH"},
	PhonePair{"AH", "UH"},
	PhonePair{"EH", "IH"},
)

// DefaultNearMissConsonants pairs consonants differing mostly in voicing or place.
var DefaultNearMissConsonants = NewNearMissTable(
	PhonePair{"B", "P"},
	PhonePair{"D", "DH"},
	PhonePair{"D", "T"},
	PhonePair{"DH", "TH"},
	PhonePair{"F", "V"},
	PhonePair{"SH", "ZH"},
	PhonePair{"CH", "JH"},
	PhonePair{"S", "Z"},
)

// Metric scores phones against a pair of near-miss tables.
// The zero value has no near misses; use DefaultMetric for the tuned tables.
type Metric struct {
	Vowels     NearMissTable
	Consonants NearMissTable
}

// DefaultMetric returns the metric used by the builders unless configured otherwise.
func DefaultMetric() Metric {
	return Metric{Vowels: DefaultNearMissVowels, Consonants: DefaultNearMissConsonants}
}

// PhoneDistance is DefaultMetric().PhoneDistance.
func PhoneDistance(p1, p2 string) int {
	return DefaultMetric().PhoneDistance(p1, p2)
}

// PhonemeDistance is DefaultMetric().PhonemeDistance.
func PhonemeDistance(a, b []string) int {
	return DefaultMetric().PhonemeDistance(a, b)
}

// PhoneDistance returns 0, 1, 2, 4 or Unmatchable for a pair of phones.
//
// Identical phones score 0. The same phone at different stress scores 1 when
// one side is primary and the other unstressed, 0 otherwise. Near-miss
// consonants score 2. Near-miss vowels score 4 but only at equal stress.
func (m Metric) PhoneDistance(p1, p2 string) int {
	if p1 == p2 {
		return DistanceIdentical
	}
	b1, b2 := Base(p1), Base(p2)
	s1, s2 := Stress(p1), Stress(p2)
	if b1 == b2 {
		if (s1 == StressUnstressed && s2 == StressPrimary) || (s1 == StressPrimary && s2 == StressUnstressed) {
			return DistanceStress
		}
		return DistanceIdentical
	}
	if m.Consonants.Contains(b1, b2) {
		return DistanceConsonant
	}
	if s1 == s2 && m.Vowels.Contains(b1, b2) {
		return DistanceVowel
	}
	return Unmatchable
}

// PhonemeDistance sums PhoneDistance over zipped positions. Callers pass
// equal-length windows; extra phones on the longer side are ignored.
func (m Metric) PhonemeDistance(a, b []string) int {
	n := min(len(a), len(b))
	total := 0
	for i := 0; i < n; i++ {
		d := m.PhoneDistance(a[i], b[i])
		if d == Unmatchable {
			return Unmatchable
		}
		total += d
		if total >= Unmatchable {
			return Unmatchable
		}
	}
	return total
}
