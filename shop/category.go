package shop

import (
	"fmt"
	"strings"
)

// Category classifies a product. The set is closed: stock keeping and
// option validation dispatch on it, and only Books and Shoes carry
// per-variant stock.
type Category int

const (
	General Category = iota
	Clothing
	Books
	Furniture
	Computers
	Shoes
)

var categoryNames = map[Category]string{
	General:   "General",
	Clothing:  "Clothing",
	Books:     "Books",
	Furniture: "Furniture",
	Computers: "Computers",
	Shoes:     "Shoes",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// hasVariants reports whether products of this category keep separate
// stock counters per variant and therefore require an options string
// when ordered.
func (c Category) hasVariants() bool {
	return c == Books || c == Shoes
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	for cat, name := range categoryNames {
		if strings.EqualFold(s, name) {
			return cat, nil
		}
	}
	return General, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
