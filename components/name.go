package components

import (
	_ "embed"
	"strings"
	"unicode/utf8"
)

// NameWidth is the display width of an organism name.
const NameWidth = 15

//go:embed names.txt
var namesTxt string

var names = parseNames(namesTxt)

// Name is an organism's display name. It is stored as plain text and only
// truncated or padded when formatted.
type Name string

// Padded returns the name cut to NameWidth runes and right-padded with spaces.
func (n Name) Padded() string {
	s := string(n)
	if utf8.RuneCountInString(s) > NameWidth {
		r := []rune(s)
		s = string(r[:NameWidth])
	}
	return s + strings.Repeat(" ", NameWidth-utf8.RuneCountInString(s))
}

// String returns the name trimmed of surrounding whitespace.
func (n Name) String() string {
	return strings.TrimSpace(string(n))
}

// Names returns the embedded founder name list.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// PickName returns a name chosen with rng, which must provide Intn.
func PickName(rng interface{ Intn(int) int }) Name {
	if len(names) == 0 {
		return "anon"
	}
	return Name(names[rng.Intn(len(names))])
}

func parseNames(data string) []string {
	var out []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
