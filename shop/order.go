package shop

import "strconv"

// Order is one placed product order. Its lifecycle is carried by which
// list the engine keeps it in: the active list after placement, the
// shipped list after shipping, or neither once cancelled. There is no
// status field to get out of sync, and no transition is reversible.
type Order struct {
	number   string
	product  *Product
	customer *Customer
	options  string
}

func (o *Order) Number() string      { return o.number }
func (o *Order) Product() *Product   { return o.product }
func (o *Order) Customer() *Customer { return o.customer }

// Options is the variant key the order was placed with, "" when the
// product has no variants.
func (o *Order) Options() string { return o.options }

// Sequence issues ids as an incrementing decimal string. The engine
// takes its order, customer and product sequences at construction so
// tests can pin the ranges.
type Sequence struct {
	next int
}

func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

func (s *Sequence) Next() string {
	id := strconv.Itoa(s.next)
	s.next++
	return id
}
