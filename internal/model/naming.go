package model

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const codeDigits = 4

// foldDiacritics strips combining marks and lower-cases s.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// NormalizeName builds the uniqueness key of a classification name: no
// diacritics, lower case, single spaces, and an n before a labial folded to m
// so that inmune and immune collide.
func NormalizeName(name string) string {
	s := strings.Join(strings.Fields(foldDiacritics(name)), " ")

	rs := []rune(s)
	for i := 0; i+1 < len(rs); i++ {
		if rs[i] == 'n' && (rs[i+1] == 'b' || rs[i+1] == 'm' || rs[i+1] == 'p') {
			rs[i] = 'm'
		}
	}
	return string(rs)
}

func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range foldDiacritics(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s-%0*d", prefix, codeDigits, n)
}

// CodeSuffix extracts the numeric counter at the end of a code such as
// CAT-0042. Codes without trailing digits report ok=false.
func CodeSuffix(code string) (int64, bool) {
	end := len(code)
	start := end
	for start > 0 && code[start-1] >= '0' && code[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n, err := strconv.ParseInt(code[start:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxCodeSuffix returns the highest counter found among codes, 0 if none.
func MaxCodeSuffix(codes []string) int64 {
	var highest int64
	for _, c := range codes {
		if n, ok := CodeSuffix(c); ok && n > highest {
			highest = n
		}
	}
	return highest
}
