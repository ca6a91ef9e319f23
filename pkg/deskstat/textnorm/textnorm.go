// Package textnorm cleans raw cell text recovered from PDF layout
// reconstruction. Normalization is a pure function: the same input always
// produces the same output, and normalized text is a fixed point.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// substitutions maps the non-ASCII sequences observed in the source
// documents to their ASCII equivalents. Applied before the generic
// diacritic fold so that punctuation (dashes, quotes) is handled
// deliberately rather than dropped.
var substitutions = map[string]string{
	"–": "-",  // en dash
	"—": "-",  // em dash
	"‘": "'",  // left single quote
	"’": "'",  // right single quote
	"“": "\"", // left double quote
	"”": "\"", // right double quote
	" ": " ",  // no-break space
	"é": "e",  // e acute
	"è": "e",  // e grave
	"ê": "e",  // e circumflex
	"á": "a",  // a acute
	"à": "a",  // a grave
	"ó": "o",  // o acute
	"ö": "o",  // o diaeresis
	"ü": "u",  // u diaeresis
	"í": "i",  // i acute
	"ñ": "n",  // n tilde
	"ç": "c",  // c cedilla
}

// corrections fixes known transcription errors in the source tables.
// Whole-word matches only.
var corrections = map[string]string{
	"Minster":   "Minister",
	"Goverment": "Government",
	"Commitee":  "Committee",
}

var replacer = buildReplacer()

func buildReplacer() *strings.Replacer {
	pairs := make([]string, 0, len(substitutions)*2)
	for from, to := range substitutions {
		pairs = append(pairs, from, to)
	}
	return strings.NewReplacer(pairs...)
}

// foldDiacritics strips combining marks from letters the substitution
// table does not cover.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize cleans a raw cell value. It applies the fixed substitution
// table, folds remaining diacritics to ASCII, escapes any byte sequence
// still outside ASCII, collapses whitespace, and applies the known
// transcription corrections. It never fails; unknown input degrades to
// an escaped-but-legible form.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = replacer.Replace(s)

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	s = escapeNonASCII(s)

	// Collapse runs of whitespace to single spaces.
	fields := strings.Fields(s)
	for i, f := range fields {
		if fixed, ok := corrections[f]; ok {
			fields[i] = fixed
		}
	}
	return strings.Join(fields, " ")
}

// NormalizeWith cleans s like Normalize and then applies extra
// whole-word corrections on top of the built-in table. Extra entries
// win over the built-ins for the words they name.
func NormalizeWith(s string, extra map[string]string) string {
	s = Normalize(s)
	if len(extra) == 0 {
		return s
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		if fixed, ok := extra[f]; ok {
			fields[i] = fixed
		}
	}
	return strings.Join(fields, " ")
}

// escapeNonASCII renders any remaining non-ASCII rune as its UTF-8 byte
// escape. The escaped form is itself ASCII, so normalization remains
// idempotent.
func escapeNonASCII(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		for _, by := range []byte(string(r)) {
			fmt.Fprintf(&b, `\x%02x`, by)
		}
	}
	return b.String()
}

// Unrecognized reports the runes in s that neither the substitution
// table nor the diacritic fold can map to ASCII. These pass through
// Normalize as byte escapes and are worth a manual look.
func Unrecognized(s string) []string {
	var out []string
	seen := make(map[rune]struct{})
	for _, r := range s {
		if r < 0x80 {
			continue
		}
		if _, ok := substitutions[string(r)]; ok {
			continue
		}
		if folded, _, err := transform.String(foldDiacritics, string(r)); err == nil && isASCII(folded) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, string(r))
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
