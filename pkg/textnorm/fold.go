// Package textnorm normaliza texto para búsquedas: minúsculas y sin tildes,
// de modo que "Bogotá" y "BOGOTA" coincidan.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold devuelve s en forma canónica para comparación (case folding + sin diacríticos).
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return folder.String(strings.TrimSpace(out))
}

// Contains indica si needle aparece en haystack ignorando mayúsculas y tildes.
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(Fold(haystack), n)
}
