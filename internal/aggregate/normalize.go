package aggregate

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ'

var alefForms = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ٱ", "ا",
)

var delegationPrefixes = []string{"الوفد ", "وفد "}

var delegationHonorifics = map[string]struct{}{"الوفد": {}, "وفد": {}}

// NormalizeWhitespace trims and collapses whitespace; used for place names.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeArabicName folds presentation forms, drops tatweel and harakat and
// unifies the Alef letterforms so the same person or delegation written by
// different reporters compares equal.
func NormalizeArabicName(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if r == tatweel || isHaraka(r) {
			return -1
		}
		return r
	}, s)
	s = alefForms.Replace(s)
	return NormalizeWhitespace(s)
}

// NormalizeDelegationName additionally strips a leading "وفد"/"الوفد"
// honorific: "الوفد الصيني" and "الصيني" are the same delegation. A cell that
// holds nothing but the honorific names no delegation and yields "".
func NormalizeDelegationName(s string) string {
	s = NormalizeArabicName(s)
	if _, ok := delegationHonorifics[s]; ok {
		return ""
	}
	for _, p := range delegationPrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
			break
		}
	}
	return s
}

func isHaraka(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}
