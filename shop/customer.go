package shop

// Customer is a registered buyer. Each customer owns exactly one cart,
// created at registration. Identity is the id; names are not unique.
type Customer struct {
	id              string
	name            string
	shippingAddress string
	cart            *Cart
}

func newCustomer(id, name, address string) *Customer {
	return &Customer{
		id:              id,
		name:            name,
		shippingAddress: address,
		cart:            &Cart{},
	}
}

func (c *Customer) ID() string              { return c.id }
func (c *Customer) Name() string            { return c.name }
func (c *Customer) ShippingAddress() string { return c.shippingAddress }
func (c *Customer) Cart() *Cart             { return c.cart }

// CartItem is one pending cart line: a product plus the variant key it
// will be ordered with ("" for products without variants).
type CartItem struct {
	Product *Product
	Options string
}

// Cart holds a customer's pending items in the order they were added.
type Cart struct {
	items []CartItem
}

// Add appends an item; insertion order is display order.
func (c *Cart) Add(item CartItem) {
	c.items = append(c.items, item)
}

// Remove drops the first line holding the given product and reports
// whether one was found.
func (c *Cart) Remove(p *Product) bool {
	for i, item := range c.items {
		if item.Product.id == p.id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart. Called after a whole-cart checkout succeeds.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}
