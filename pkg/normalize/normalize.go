// Package normalize normaliza términos de búsqueda: sin acentos ni
// mayúsculas, para que "Émbolo" encuentre "embolo" y viceversa.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold devuelve el término en minúsculas y sin marcas diacríticas.
func Fold(s string) string {
	out, _, err := transform.String(folder, s)
	if err != nil {
		// Entrada con bytes inválidos: degradar a minúsculas simples
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// Term prepara un término de búsqueda para LIKE: folding + trim.
func Term(s string) string {
	return strings.TrimSpace(Fold(s))
}
