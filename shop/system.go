package shop

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// System is the inventory-and-order engine: it owns the catalog, the
// registered customers, the active and shipped order lists and the
// times-ordered statistics. All operations are synchronous and
// single-threaded; a server adapter must serialize the mutating calls
// itself (httpd does, with one mutex).
type System struct {
	products map[string]*Product
	catalog  []*Product // insertion order, which is ascending id
	custs    []*Customer
	orders   []*Order
	shipped  []*Order
	stats    map[string]int

	orderSeq *Sequence
	custSeq  *Sequence
	prodSeq  *Sequence
}

// New builds an engine with the conventional id ranges: orders from
// 500, customers from 900, products from 700.
func New() *System {
	return NewWithSequences(NewSequence(500), NewSequence(900), NewSequence(700))
}

// NewWithSequences builds an engine with caller-supplied id sequences.
func NewWithSequences(orders, customers, products *Sequence) *System {
	return &System{
		products: make(map[string]*Product),
		stats:    make(map[string]int),
		orderSeq: orders,
		custSeq:  customers,
		prodSeq:  products,
	}
}

func (s *System) addToCatalog(p *Product) {
	s.products[p.id] = p
	s.catalog = append(s.catalog, p)
}

// AddProduct creates a product in a category without variants. Books
// and Shoes have their own constructors because they carry variant
// stock and extra fields.
func (s *System) AddProduct(name string, price decimal.Decimal, stock int, category Category) (*Product, error) {
	if category.hasVariants() {
		return nil, fmt.Errorf("category %s requires its dedicated constructor", category)
	}
	if err := checkNameAndPrice(name, price); err != nil {
		return nil, err
	}
	p := newProduct(s.prodSeq.Next(), name, price, stock, category)
	s.addToCatalog(p)
	return p, nil
}

// AddBook creates a Books product with paperback and hardcover
// counters plus the title/author/year record. EBook stock starts at 0
// and is set per option.
func (s *System) AddBook(name string, price decimal.Decimal, paperback, hardcover int, title, author string, year int) (*Product, error) {
	if err := checkNameAndPrice(name, price); err != nil {
		return nil, err
	}
	p := newBook(s.prodSeq.Next(), name, price, paperback, hardcover, title, author, year)
	s.addToCatalog(p)
	return p, nil
}

// AddShoes creates a Shoes product with all size/colour counters at 0;
// stock them per option with SetStock.
func (s *System) AddShoes(name string, price decimal.Decimal) (*Product, error) {
	if err := checkNameAndPrice(name, price); err != nil {
		return nil, err
	}
	p := newShoes(s.prodSeq.Next(), name, price)
	s.addToCatalog(p)
	return p, nil
}

func checkNameAndPrice(name string, price decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: product name is empty", ErrInvalidName)
	}
	if !price.IsPositive() {
		return fmt.Errorf("product price %s is not positive", price)
	}
	return nil
}

// FindProduct resolves a product id.
func (s *System) FindProduct(id string) (*Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrUnknownProduct, id)
	}
	return p, nil
}

// FindCustomer resolves a customer id.
func (s *System) FindCustomer(id string) (*Customer, error) {
	for _, c := range s.custs {
		if c.id == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s", ErrUnknownCustomer, id)
}

// CreateCustomer registers a customer with a fresh id and an empty
// cart. Name and address must both be non-empty.
func (s *System) CreateCustomer(name, address string) (*Customer, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: customer name is empty", ErrInvalidName)
	}
	if address == "" {
		return nil, fmt.Errorf("%w: customer address is empty", ErrInvalidAddress)
	}
	c := newCustomer(s.custSeq.Next(), name, address)
	s.custs = append(s.custs, c)
	return c, nil
}

// OrderProduct places one order and returns its order number. Options
// must be "" for categories without variants and a valid variant key
// for Books and Shoes; supplying it the wrong way round is an
// incorrect-ordering-channel failure, not an option failure.
//
// The checks run in a fixed order and the first failure wins: customer,
// product, channel, options, stock. Nothing is mutated until all five
// pass; then the variant's counter drops by one, the order joins the
// active list and the product's times-ordered count goes up.
func (s *System) OrderProduct(productID, customerID, options string) (string, error) {
	cust, err := s.FindCustomer(customerID)
	if err != nil {
		return "", err
	}
	prod, err := s.FindProduct(productID)
	if err != nil {
		return "", err
	}
	if options != "" && !prod.category.hasVariants() {
		return "", fmt.Errorf("%w: product %s takes no options", ErrIncorrectOrderingChannel, productID)
	}
	if options == "" && prod.category.hasVariants() {
		return "", fmt.Errorf("%w: product %s requires options", ErrIncorrectOrderingChannel, productID)
	}
	if prod.category.hasVariants() && !prod.ValidOptions(options) {
		return "", fmt.Errorf("%w: product %s options %q", ErrInvalidProductOption, productID, options)
	}
	if prod.Stock(options) <= 0 {
		return "", fmt.Errorf("%w: product %s %s", ErrNoStock, productID, options)
	}

	prod.reduceStock(options)
	order := &Order{
		number:   s.orderSeq.Next(),
		product:  prod,
		customer: cust,
		options:  options,
	}
	s.orders = append(s.orders, order)
	s.stats[prod.id]++
	return order.number, nil
}

func (s *System) findActiveOrder(number string) (int, *Order) {
	for i, o := range s.orders {
		if o.number == number {
			return i, o
		}
	}
	return -1, nil
}

// ShipOrder moves an active order to the shipped list and returns it.
func (s *System) ShipOrder(number string) (*Order, error) {
	i, order := s.findActiveOrder(number)
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrInvalidOrder, number)
	}
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	s.shipped = append(s.shipped, order)
	return order, nil
}

// CancelOrder removes an active order outright. Cancelled orders are
// not retained anywhere; shipped orders cannot be cancelled.
func (s *System) CancelOrder(number string) error {
	i, order := s.findActiveOrder(number)
	if order == nil {
		return fmt.Errorf("%w: order %s", ErrInvalidOrder, number)
	}
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return nil
}

// AddToCart puts a product in the customer's cart with the variant key
// it will later be ordered with. The key is validated now so a bad one
// is caught at add time, not checkout time.
func (s *System) AddToCart(productID, customerID, options string) error {
	cust, err := s.FindCustomer(customerID)
	if err != nil {
		return err
	}
	prod, err := s.FindProduct(productID)
	if err != nil {
		return err
	}
	if !prod.ValidOptions(options) {
		return fmt.Errorf("%w: product %s options %q", ErrInvalidProductOption, productID, options)
	}
	cust.cart.Add(CartItem{Product: prod, Options: options})
	return nil
}

// RemoveFromCart drops the first cart line holding the product and
// reports whether one was there. An absent line is not an error.
func (s *System) RemoveFromCart(productID, customerID string) (bool, error) {
	cust, err := s.FindCustomer(customerID)
	if err != nil {
		return false, err
	}
	prod, err := s.FindProduct(productID)
	if err != nil {
		return false, err
	}
	return cust.cart.Remove(prod), nil
}

// CartItems lists the customer's cart in insertion order.
func (s *System) CartItems(customerID string) ([]CartItem, error) {
	cust, err := s.FindCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return cust.cart.Items(), nil
}

// OrderCartItems places every cart line in insertion order, then
// clears the cart. On the first line that fails it stops and returns
// that failure with the cart untouched; orders already placed in the
// loop stand, since each was individually valid when placed.
func (s *System) OrderCartItems(customerID string) error {
	cust, err := s.FindCustomer(customerID)
	if err != nil {
		return err
	}
	for _, item := range cust.cart.Items() {
		if _, err := s.OrderProduct(item.Product.id, customerID, item.Options); err != nil {
			return err
		}
	}
	cust.cart.Clear()
	return nil
}

// Products lists the catalog in its canonical order, ascending id.
func (s *System) Products() []*Product {
	out := make([]*Product, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// ProductsByCategory lists one category's products in catalog order.
func (s *System) ProductsByCategory(category Category) []*Product {
	var out []*Product
	for _, p := range s.catalog {
		if p.category == category {
			out = append(out, p)
		}
	}
	return out
}

// Books lists the catalog's books in catalog order.
func (s *System) Books() []*Product {
	return s.ProductsByCategory(Books)
}

// Customers lists registered customers in their current order.
func (s *System) Customers() []*Customer {
	out := make([]*Customer, len(s.custs))
	copy(out, s.custs)
	return out
}

// Orders lists active orders, oldest first.
func (s *System) Orders() []*Order {
	out := make([]*Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// ShippedOrders lists shipped orders, oldest first.
func (s *System) ShippedOrders() []*Order {
	out := make([]*Order, len(s.shipped))
	copy(out, s.shipped)
	return out
}

// OrderHistory returns one customer's active and shipped orders.
func (s *System) OrderHistory(customerID string) (active, shipped []*Order, err error) {
	if _, err := s.FindCustomer(customerID); err != nil {
		return nil, nil, err
	}
	for _, o := range s.orders {
		if o.customer.id == customerID {
			active = append(active, o)
		}
	}
	for _, o := range s.shipped {
		if o.customer.id == customerID {
			shipped = append(shipped, o)
		}
	}
	return active, shipped, nil
}

// BooksByAuthor returns the author's books ordered by publication
// year, ties kept in catalog order. The author match is exact and
// case-sensitive; no match at all is an invalid-name failure.
func (s *System) BooksByAuthor(author string) ([]*Product, error) {
	var books []*Product
	for _, p := range s.catalog {
		if p.category == Books && p.book.author == author {
			books = append(books, p)
		}
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w: author %q", ErrInvalidName, author)
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].book.year < books[j].book.year
	})
	return books, nil
}

// SortByPrice returns the catalog sorted by ascending price. The
// canonical catalog order is left alone.
func (s *System) SortByPrice() []*Product {
	out := s.Products()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].price.LessThan(out[j].price)
	})
	return out
}

// SortByName returns the catalog sorted by name. The canonical catalog
// order is left alone.
func (s *System) SortByName() []*Product {
	out := s.Products()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}

// SortCustomersByName reorders the customer list alphabetically. This
// one, unlike the product sorts, changes the stored order.
func (s *System) SortCustomersByName() {
	sort.SliceStable(s.custs, func(i, j int) bool {
		return s.custs[i].name < s.custs[j].name
	})
}

// RateProduct records a 1–5 star review on the product's histogram.
func (s *System) RateProduct(productID string, rating int) error {
	prod, err := s.FindProduct(productID)
	if err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating %d is not in range 1-5", ErrIllegalRating, rating)
	}
	prod.rate(rating)
	return nil
}

// Ratings returns a product's review histogram.
func (s *System) Ratings(productID string) (map[int]int, error) {
	prod, err := s.FindProduct(productID)
	if err != nil {
		return nil, err
	}
	return prod.Ratings(), nil
}

// ProductsAbove lists the category's products whose average rating is
// at least the given star value, in catalog order. Unrated products
// never qualify (their average is NaN).
func (s *System) ProductsAbove(category string, rating int) ([]*Product, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating %d is not in range 1-5", ErrIllegalRating, rating)
	}
	var out []*Product
	for _, p := range s.catalog {
		if p.category == cat && p.AverageRating() >= float64(rating) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ProductStat is one row of the times-ordered report.
type ProductStat struct {
	Product *Product
	Count   int
}

// Stats reports how many times each product has been ordered, most
// ordered first, ties in catalog order. Counts only grow: cancelling
// an order does not take its placement back.
func (s *System) Stats() []ProductStat {
	var out []ProductStat
	for _, p := range s.catalog {
		if n, ok := s.stats[p.id]; ok {
			out = append(out, ProductStat{Product: p, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
