package shop

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog item. The variant payloads are a closed set
// rather than subclasses: book holds per-format counters (and the
// title/author/year record) when the category is Books, shoes holds
// the size/colour counters when it is Shoes, and every other category
// uses the single base counter. Two products are the same product iff
// their ids match, and ids are only ever minted by the catalog.
type Product struct {
	id       string
	name     string
	price    decimal.Decimal
	category Category

	// stock is the whole count for non-variant categories. For Books
	// it backs the EBook format only.
	stock   int
	book    *bookDetails
	shoes   *shoeStock
	ratings map[int]int
}

type bookDetails struct {
	title     string
	author    string
	year      int
	paperback int
	hardcover int
}

type shoeStock struct {
	counts map[ShoeOption]int
}

func newProduct(id, name string, price decimal.Decimal, stock int, category Category) *Product {
	ratings := make(map[int]int, 5)
	for star := 1; star <= 5; star++ {
		ratings[star] = 0
	}
	return &Product{
		id:       id,
		name:     name,
		price:    price,
		category: category,
		stock:    stock,
		ratings:  ratings,
	}
}

func newBook(id, name string, price decimal.Decimal, paperback, hardcover int, title, author string, year int) *Product {
	p := newProduct(id, name, price, 0, Books)
	p.book = &bookDetails{
		title:     title,
		author:    author,
		year:      year,
		paperback: paperback,
		hardcover: hardcover,
	}
	return p
}

func newShoes(id, name string, price decimal.Decimal) *Product {
	p := newProduct(id, name, price, 0, Shoes)
	p.shoes = &shoeStock{counts: make(map[ShoeOption]int)}
	return p
}

func (p *Product) ID() string             { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Category() Category     { return p.category }

// Title, Author and Year return the book record, or zero values for
// products that are not books.
func (p *Product) Title() string {
	if p.book == nil {
		return ""
	}
	return p.book.title
}

func (p *Product) Author() string {
	if p.book == nil {
		return ""
	}
	return p.book.author
}

func (p *Product) Year() int {
	if p.book == nil {
		return 0
	}
	return p.book.year
}

// ValidOptions reports whether options is a usable variant key for
// this product. Categories without variants accept anything, books
// accept their three formats case-insensitively, and shoes accept
// exactly the <size><Colour> tokens.
func (p *Product) ValidOptions(options string) bool {
	switch p.category {
	case Books:
		_, ok := normalizeBookFormat(options)
		return ok
	case Shoes:
		_, ok := ParseShoeOption(options)
		return ok
	default:
		return true
	}
}

// Stock returns the counter selected by options. Non-variant
// categories ignore options entirely. Unrecognized variant keys read
// as 0; the ordering pipeline validates options before it asks.
func (p *Product) Stock(options string) int {
	switch p.category {
	case Books:
		switch format, _ := normalizeBookFormat(options); format {
		case Paperback:
			return p.book.paperback
		case Hardcover:
			return p.book.hardcover
		case EBook:
			return p.stock
		}
		return 0
	case Shoes:
		opt, ok := ParseShoeOption(options)
		if !ok {
			return 0
		}
		return p.shoes.counts[opt]
	default:
		return p.stock
	}
}

// SetStock overwrites the counter selected by options. Unrecognized
// variant keys are ignored.
func (p *Product) SetStock(count int, options string) {
	switch p.category {
	case Books:
		switch format, _ := normalizeBookFormat(options); format {
		case Paperback:
			p.book.paperback = count
		case Hardcover:
			p.book.hardcover = count
		case EBook:
			p.stock = count
		}
	case Shoes:
		if opt, ok := ParseShoeOption(options); ok {
			p.shoes.counts[opt] = count
		}
	default:
		p.stock = count
	}
}

// reduceStock takes exactly one unit off the counter selected by
// options. It does not guard against going negative; the ordering
// pipeline checks Stock first and is the only caller.
func (p *Product) reduceStock(options string) {
	switch p.category {
	case Books:
		switch format, _ := normalizeBookFormat(options); format {
		case Paperback:
			p.book.paperback--
		case Hardcover:
			p.book.hardcover--
		case EBook:
			p.stock--
		}
	case Shoes:
		if opt, ok := ParseShoeOption(options); ok {
			p.shoes.counts[opt]--
		}
	default:
		p.stock--
	}
}

// rate records one review at the given star value. Range checking is
// the engine's job; see System.RateProduct.
func (p *Product) rate(star int) {
	p.ratings[star]++
}

// Ratings returns a copy of the histogram: review count per star 1–5.
func (p *Product) Ratings() map[int]int {
	out := make(map[int]int, len(p.ratings))
	for star, n := range p.ratings {
		out[star] = n
	}
	return out
}

// AverageRating derives the mean star value from the histogram. With
// no reviews recorded it is NaN; callers that display it must guard.
func (p *Product) AverageRating() float64 {
	var total, count int
	for star, n := range p.ratings {
		total += star * n
		count += n
	}
	return float64(total) / float64(count)
}
