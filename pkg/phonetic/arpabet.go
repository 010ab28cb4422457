/*
Package phonetic maps spellings onto ARPAbet pronunciations and scores how
close two pronunciations sound.

An Alignment pairs the grapheme chunks of a word with its phoneme chunks so a
window of phones can be translated back into the letters that spell it.
PhoneDistance and PhonemeDistance implement the near-miss tolerance used when
matching the tail of one word against another.
*/
package phonetic

import "strings"

// Stress levels carried by the trailing digit of an ARPAbet vowel.
const (
	StressNone       = -1
	StressUnstressed = 0
	StressPrimary    = 1
	StressSecondary  = 2
)

var vowels = map[string]struct{}{
	"AA": {}, "AE": {}, "AH": {}, "AO": {}, "AW": {}, "AX": {}, "AXR": {}, "AY": {},
	"EH": {}, "ER": {}, "EY": {}, "IH": {}, "IX": {}, "IY": {}, "OW": {}, "OY": {},
	"UH": {}, "UW": {}, "UX": {},
}

var consonants = map[string]struct{}{
	"B": {}, "CH": {}, "D": {}, "DH": {}, "DX": {}, "EL": {}, "EM": {}, "EN": {},
	"F": {}, "G": {}, "H": {}, "HH": {}, "JH": {}, "K": {}, "L": {}, "M": {},
	"N": {}, "NG": {}, "NX": {}, "P": {}, "Q": {}, "R": {}, "S": {}, "SH": {},
	"T": {}, "TH": {}, "V": {}, "W": {}, "WH": {}, "Y": {}, "Z": {}, "ZH": {},
}

var diphthongs = map[string]struct{}{"AW": {}, "AY": {}, "EY": {}, "OW": {}, "OY": {}}

var rhotics = map[string]struct{}{"ER": {}}

// Base strips the stress digit from a phone, "AE1" becomes "AE".
func Base(phone string) string {
	return strings.TrimRight(phone, "0123456789")
}

// Stress returns the stress digit of a phone or StressNone when unmarked.
func Stress(phone string) int {
	if phone == "" {
		return StressNone
	}
	last := phone[len(phone)-1]
	if last < '0' || last > '9' {
		return StressNone
	}
	return int(last - '0')
}

// IsVowel reports whether the phone, ignoring stress, is an ARPAbet vowel.
func IsVowel(phone string) bool {
	_, ok := vowels[Base(phone)]
	return ok
}

// IsConsonant reports whether the phone, ignoring stress, is an ARPAbet consonant.
func IsConsonant(phone string) bool {
	_, ok := consonants[Base(phone)]
	return ok
}

func IsDiphthong(phone string) bool {
	_, ok := diphthongs[Base(phone)]
	return ok
}

func IsRhotic(phone string) bool {
	_, ok := rhotics[Base(phone)]
	return ok
}

// CountClasses returns the number of vowel and consonant phones in phones.
func CountClasses(phones []string) (vowelCount, consonantCount int) {
	for _, p := range phones {
		switch {
		case IsVowel(p):
			vowelCount++
		case IsConsonant(p):
			consonantCount++
		}
	}
	return vowelCount, consonantCount
}
