package shop

import (
	"strconv"
	"strings"
)

// Book format options. Matching is case-insensitive, so "ebook" and
// "PAPERBACK" are accepted and normalized to these spellings.
const (
	Paperback = "Paperback"
	Hardcover = "Hardcover"
	EBook     = "EBook"
)

func normalizeBookFormat(options string) (string, bool) {
	for _, format := range []string{Paperback, Hardcover, EBook} {
		if strings.EqualFold(options, format) {
			return format, true
		}
	}
	return "", false
}

// ShoeOption is a decoded shoe variant: a size between 6 and 10 and a
// colour of Black or Brown.
type ShoeOption struct {
	Size   int
	Colour string
}

func (o ShoeOption) String() string {
	return strconv.Itoa(o.Size) + o.Colour
}

// ParseShoeOption decodes a single-token shoe option such as "6Black"
// or "10Brown". The size is the leading digits, with "10" the only
// two-digit case, and the colour is matched exactly: unlike book
// formats, shoe options are case-sensitive.
func ParseShoeOption(options string) (ShoeOption, bool) {
	if options == "" {
		return ShoeOption{}, false
	}
	sizeStr, colour := options[:1], options[1:]
	if strings.HasPrefix(options, "10") {
		sizeStr, colour = options[:2], options[2:]
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 6 || size > 10 {
		return ShoeOption{}, false
	}
	if colour != "Black" && colour != "Brown" {
		return ShoeOption{}, false
	}
	return ShoeOption{Size: size, Colour: colour}, true
}
