package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDeadline is used whenever no deadline phrase can be recognized.
const DefaultDeadline = "1 mes"

// TimeUnit is the unit a deadline phrase is expressed in.
type TimeUnit int

const (
	UnitWeek TimeUnit = iota
	UnitMonth
	UnitYear
)

// Name returns the Spanish unit name for n occurrences, pluralized.
func (u TimeUnit) Name(n int) string {
	switch u {
	case UnitWeek:
		if n == 1 {
			return "semana"
		}
		return "semanas"
	case UnitMonth:
		if n == 1 {
			return "mes"
		}
		return "meses"
	default:
		if n == 1 {
			return "año"
		}
		return "años"
	}
}

var (
	// "uno"/"una" before "un" so the longer forms win.
	spelledNumbers = regexp.MustCompile(`\b(uno|una|un|dos|tres|cuatro|cinco|seis|siete|ocho|nueve|diez|doce)\b`)

	// "en N unidad" is more specific than a bare "N unidad", and week beats
	// month beats year when a phrase somehow matches more than one.
	deadlinePatterns = []struct {
		re   *regexp.Regexp
		unit TimeUnit
	}{
		{regexp.MustCompile(`\ben\s+(\d+)\s*semanas?`), UnitWeek},
		{regexp.MustCompile(`\ben\s+(\d+)\s*mes(?:es)?`), UnitMonth},
		{regexp.MustCompile(`\ben\s+(\d+)\s*años?`), UnitYear},
		{regexp.MustCompile(`(\d+)\s*semanas?`), UnitWeek},
		{regexp.MustCompile(`(\d+)\s*mes(?:es)?`), UnitMonth},
		{regexp.MustCompile(`(\d+)\s*años?`), UnitYear},
	}

	spelledToDigit = map[string]string{
		"uno": "1", "una": "1", "un": "1",
		"dos": "2", "tres": "3", "cuatro": "4", "cinco": "5",
		"seis": "6", "siete": "7", "ocho": "8", "nueve": "9",
		"diez": "10", "doce": "12",
	}
)

// ExtractDeadline pulls a deadline phrase like "2 semanas" or "3 meses" out
// of free text. Spelled-out small numbers are resolved first, so "en dos
// meses" yields "2 meses". When nothing matches it returns DefaultDeadline.
func ExtractDeadline(text string) string {
	n, unit, ok := ParseDeadline(text)
	if !ok {
		return DefaultDeadline
	}
	return fmt.Sprintf("%d %s", n, unit.Name(n))
}

// ParseDeadline resolves the number and unit of the first deadline phrase in
// text. Returns ok=false when no digit+unit pattern is found.
func ParseDeadline(text string) (int, TimeUnit, bool) {
	normalized := spelledNumbers.ReplaceAllStringFunc(strings.ToLower(text), func(w string) string {
		return spelledToDigit[w]
	})

	for _, p := range deadlinePatterns {
		m := p.re.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		return n, p.unit, true
	}
	return 0, 0, false
}
