package shop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/shop"
)

// newStore builds an engine with the default id ranges (products from
// 700, customers from 900, orders from 500) and a small catalog:
//
//	700 Dune            book, Paperback=2 Hardcover=0
//	701 Desk Lamp       general, stock 3
//	702 Oxford          shoes, 6Black=1
//	703 Hyperion        book (same author as 704), year 1989
//	704 Fall of Hyperion                           year 1990
//
// plus one customer, 900.
func newStore(t *testing.T) *shop.System {
	t.Helper()
	sys := shop.New()

	_, err := sys.AddBook("Dune", price("15.99"), 2, 0, "Dune", "Frank Herbert", 1965)
	require.NoError(t, err)
	_, err = sys.AddProduct("Desk Lamp", price("24.50"), 3, shop.General)
	require.NoError(t, err)
	shoes, err := sys.AddShoes("Oxford", price("89.00"))
	require.NoError(t, err)
	shoes.SetStock(1, "6Black")
	_, err = sys.AddBook("Hyperion", price("11.50"), 5, 5, "Hyperion", "Dan Simmons", 1989)
	require.NoError(t, err)
	_, err = sys.AddBook("FallOfHyperion", price("12.50"), 5, 5, "The Fall of Hyperion", "Dan Simmons", 1990)
	require.NoError(t, err)

	_, err = sys.CreateCustomer("Nora Byrne", "12 Quay Street, Galway")
	require.NoError(t, err)
	return sys
}

func TestCreateCustomer(t *testing.T) {
	sys := shop.New()

	c, err := sys.CreateCustomer("Nora Byrne", "12 Quay Street, Galway")
	require.NoError(t, err)
	assert.Equal(t, "900", c.ID())
	assert.Equal(t, "Nora Byrne", c.Name())
	assert.Equal(t, "12 Quay Street, Galway", c.ShippingAddress())

	c2, err := sys.CreateCustomer("Omar Haddad", "3 Mill Road, Leeds")
	require.NoError(t, err)
	assert.Equal(t, "901", c2.ID())

	_, err = sys.CreateCustomer("", "somewhere")
	assert.ErrorIs(t, err, shop.ErrInvalidName)
	_, err = sys.CreateCustomer("No Address", "")
	assert.ErrorIs(t, err, shop.ErrInvalidAddress)
}

func TestOrderProductScenario(t *testing.T) {
	sys := newStore(t)

	// Hardcover stock is 0.
	_, err := sys.OrderProduct("700", "900", "Hardcover")
	assert.ErrorIs(t, err, shop.ErrNoStock)

	num, err := sys.OrderProduct("700", "900", "Paperback")
	require.NoError(t, err)
	assert.Equal(t, "500", num)

	p, err := sys.FindProduct("700")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock("Paperback"))

	// The failed hardcover attempt changed nothing.
	assert.Equal(t, 0, p.Stock("Hardcover"))
	require.Len(t, sys.Orders(), 1)
	assert.Equal(t, "500", sys.Orders()[0].Number())
	assert.Equal(t, "900", sys.Orders()[0].Customer().ID())
	assert.Equal(t, "Paperback", sys.Orders()[0].Options())
}

func TestOrderProductResolution(t *testing.T) {
	sys := newStore(t)

	_, err := sys.OrderProduct("700", "999", "Paperback")
	assert.ErrorIs(t, err, shop.ErrUnknownCustomer)

	_, err = sys.OrderProduct("799", "900", "Paperback")
	assert.ErrorIs(t, err, shop.ErrUnknownProduct)

	// Customer resolution is checked before product resolution.
	_, err = sys.OrderProduct("799", "999", "")
	assert.ErrorIs(t, err, shop.ErrUnknownCustomer)
}

func TestOrderingChannelConsistency(t *testing.T) {
	sys := newStore(t)

	// A book ordered through the plain channel.
	_, err := sys.OrderProduct("700", "900", "")
	assert.ErrorIs(t, err, shop.ErrIncorrectOrderingChannel)

	// Shoes too.
	_, err = sys.OrderProduct("702", "900", "")
	assert.ErrorIs(t, err, shop.ErrIncorrectOrderingChannel)

	// And a general product ordered with options.
	_, err = sys.OrderProduct("701", "900", "Paperback")
	assert.ErrorIs(t, err, shop.ErrIncorrectOrderingChannel)

	// Nothing was placed or decremented along the way.
	assert.Empty(t, sys.Orders())
	lamp, _ := sys.FindProduct("701")
	assert.Equal(t, 3, lamp.Stock(""))
}

func TestOrderProductOptionValidation(t *testing.T) {
	sys := newStore(t)

	_, err := sys.OrderProduct("700", "900", "Audiobook")
	assert.ErrorIs(t, err, shop.ErrInvalidProductOption)

	// Shoe options are case-sensitive.
	_, err = sys.OrderProduct("702", "900", "6black")
	assert.ErrorIs(t, err, shop.ErrInvalidProductOption)

	// But book formats are not.
	num, err := sys.OrderProduct("700", "900", "paperback")
	require.NoError(t, err)
	assert.Equal(t, "500", num)
}

func TestOrderDecrementsExactVariantOnly(t *testing.T) {
	sys := newStore(t)
	shoes, _ := sys.FindProduct("702")
	shoes.SetStock(4, "6Brown")

	_, err := sys.OrderProduct("702", "900", "6Black")
	require.NoError(t, err)

	assert.Equal(t, 0, shoes.Stock("6Black"))
	assert.Equal(t, 4, shoes.Stock("6Brown"))
	dune, _ := sys.FindProduct("700")
	assert.Equal(t, 2, dune.Stock("Paperback"))

	// Stock is exhausted now; ordering again fails and stays at 0.
	_, err = sys.OrderProduct("702", "900", "6Black")
	assert.ErrorIs(t, err, shop.ErrNoStock)
	assert.Equal(t, 0, shoes.Stock("6Black"))
}

func TestShipAndCancelOrder(t *testing.T) {
	sys := newStore(t)
	num, err := sys.OrderProduct("700", "900", "Paperback")
	require.NoError(t, err)

	order, err := sys.ShipOrder(num)
	require.NoError(t, err)
	assert.Equal(t, num, order.Number())
	assert.Empty(t, sys.Orders())
	require.Len(t, sys.ShippedOrders(), 1)

	// Shipped means no longer active: cancel now fails.
	err = sys.CancelOrder(num)
	assert.ErrorIs(t, err, shop.ErrInvalidOrder)

	// And shipping it twice fails the same way.
	_, err = sys.ShipOrder(num)
	assert.ErrorIs(t, err, shop.ErrInvalidOrder)
}

func TestCancelOrderRemovesOutright(t *testing.T) {
	sys := newStore(t)
	num, err := sys.OrderProduct("701", "900", "")
	require.NoError(t, err)

	require.NoError(t, sys.CancelOrder(num))
	assert.Empty(t, sys.Orders())
	assert.Empty(t, sys.ShippedOrders())

	err = sys.CancelOrder(num)
	assert.ErrorIs(t, err, shop.ErrInvalidOrder)

	// Cancellation does not restock and does not undo the stat.
	lamp, _ := sys.FindProduct("701")
	assert.Equal(t, 2, lamp.Stock(""))
	stats := sys.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, "701", stats[0].Product.ID())
	assert.Equal(t, 1, stats[0].Count)
}

func TestCartAddRemove(t *testing.T) {
	sys := newStore(t)

	require.NoError(t, sys.AddToCart("701", "900", ""))
	require.NoError(t, sys.AddToCart("700", "900", "Paperback"))

	items, err := sys.CartItems("900")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "701", items[0].Product.ID())
	assert.Equal(t, "700", items[1].Product.ID())

	removed, err := sys.RemoveFromCart("701", "900")
	require.NoError(t, err)
	assert.True(t, removed)

	// Removing it again is a no-op, not an error.
	removed, err = sys.RemoveFromCart("701", "900")
	require.NoError(t, err)
	assert.False(t, removed)

	err = sys.AddToCart("700", "900", "Audiobook")
	assert.ErrorIs(t, err, shop.ErrInvalidProductOption)

	err = sys.AddToCart("700", "999", "Paperback")
	assert.ErrorIs(t, err, shop.ErrUnknownCustomer)
	_, err = sys.RemoveFromCart("799", "900")
	assert.ErrorIs(t, err, shop.ErrUnknownProduct)
}

func TestOrderCartItems(t *testing.T) {
	sys := newStore(t)
	require.NoError(t, sys.AddToCart("701", "900", ""))
	require.NoError(t, sys.AddToCart("700", "900", "Paperback"))

	require.NoError(t, sys.OrderCartItems("900"))

	items, err := sys.CartItems("900")
	require.NoError(t, err)
	assert.Empty(t, items)

	orders := sys.Orders()
	require.Len(t, orders, 2)
	// Placed in cart insertion order.
	assert.Equal(t, "701", orders[0].Product().ID())
	assert.Equal(t, "700", orders[1].Product().ID())
}

func TestOrderCartItemsStopsOnFirstFailure(t *testing.T) {
	sys := newStore(t)
	// 6Black has stock 1, so the second shoe line must fail.
	require.NoError(t, sys.AddToCart("702", "900", "6Black"))
	require.NoError(t, sys.AddToCart("702", "900", "6Black"))
	require.NoError(t, sys.AddToCart("701", "900", ""))

	err := sys.OrderCartItems("900")
	assert.ErrorIs(t, err, shop.ErrNoStock)

	// The first line was placed; the cart is left as it was, and the
	// line after the failing one was never attempted.
	require.Len(t, sys.Orders(), 1)
	items, err := sys.CartItems("900")
	require.NoError(t, err)
	assert.Len(t, items, 3)
	lamp, _ := sys.FindProduct("701")
	assert.Equal(t, 3, lamp.Stock(""))
}

func TestOrderHistory(t *testing.T) {
	sys := newStore(t)
	_, err := sys.CreateCustomer("Omar Haddad", "3 Mill Road, Leeds")
	require.NoError(t, err)

	first, err := sys.OrderProduct("701", "900", "")
	require.NoError(t, err)
	second, err := sys.OrderProduct("700", "900", "Paperback")
	require.NoError(t, err)
	_, err = sys.OrderProduct("701", "901", "")
	require.NoError(t, err)

	_, err = sys.ShipOrder(first)
	require.NoError(t, err)

	active, shipped, err := sys.OrderHistory("900")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second, active[0].Number())
	require.Len(t, shipped, 1)
	assert.Equal(t, first, shipped[0].Number())

	_, _, err = sys.OrderHistory("999")
	assert.ErrorIs(t, err, shop.ErrUnknownCustomer)
}

func TestBooksByAuthor(t *testing.T) {
	sys := newStore(t)

	_, err := sys.BooksByAuthor("NoSuchAuthor")
	assert.ErrorIs(t, err, shop.ErrInvalidName)

	// Author match is case-sensitive.
	_, err = sys.BooksByAuthor("dan simmons")
	assert.ErrorIs(t, err, shop.ErrInvalidName)

	books, err := sys.BooksByAuthor("Dan Simmons")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, 1989, books[0].Year())
	assert.Equal(t, 1990, books[1].Year())
}

func TestSortsAreReadOnly(t *testing.T) {
	sys := newStore(t)

	idsBefore := catalogIDs(sys)

	byPrice := sys.SortByPrice()
	for i := 1; i < len(byPrice); i++ {
		assert.False(t, byPrice[i].Price().LessThan(byPrice[i-1].Price()))
	}

	byName := sys.SortByName()
	for i := 1; i < len(byName); i++ {
		assert.LessOrEqual(t, byName[i-1].Name(), byName[i].Name())
	}

	assert.Equal(t, idsBefore, catalogIDs(sys), "sorting must not reorder the catalog")
}

func catalogIDs(sys *shop.System) []string {
	var ids []string
	for _, p := range sys.Products() {
		ids = append(ids, p.ID())
	}
	return ids
}

func TestSortCustomersByName(t *testing.T) {
	sys := shop.New()
	_, err := sys.CreateCustomer("Zoe Quinn", "a")
	require.NoError(t, err)
	_, err = sys.CreateCustomer("Abe Ford", "b")
	require.NoError(t, err)

	sys.SortCustomersByName()
	custs := sys.Customers()
	require.Len(t, custs, 2)
	assert.Equal(t, "Abe Ford", custs[0].Name())
	assert.Equal(t, "Zoe Quinn", custs[1].Name())
}

func TestRateProduct(t *testing.T) {
	sys := newStore(t)

	assert.ErrorIs(t, sys.RateProduct("700", 6), shop.ErrIllegalRating)
	assert.ErrorIs(t, sys.RateProduct("700", 0), shop.ErrIllegalRating)
	assert.ErrorIs(t, sys.RateProduct("799", 3), shop.ErrUnknownProduct)

	require.NoError(t, sys.RateProduct("700", 4))
	require.NoError(t, sys.RateProduct("700", 5))

	hist, err := sys.Ratings("700")
	require.NoError(t, err)
	assert.Equal(t, 1, hist[4])
	assert.Equal(t, 1, hist[5])

	dune, _ := sys.FindProduct("700")
	assert.InDelta(t, 4.5, dune.AverageRating(), 1e-9)
}

func TestProductsAbove(t *testing.T) {
	sys := newStore(t)
	require.NoError(t, sys.RateProduct("700", 5))
	require.NoError(t, sys.RateProduct("703", 2))

	books, err := sys.ProductsAbove("books", 4)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "700", books[0].ID())

	// Unrated products never qualify.
	general, err := sys.ProductsAbove("General", 1)
	require.NoError(t, err)
	assert.Empty(t, general)

	_, err = sys.ProductsAbove("groceries", 3)
	assert.ErrorIs(t, err, shop.ErrUnknownCategory)
	_, err = sys.ProductsAbove("books", 9)
	assert.ErrorIs(t, err, shop.ErrIllegalRating)
}

func TestStatsOrdering(t *testing.T) {
	sys := newStore(t)

	for i := 0; i < 2; i++ {
		_, err := sys.OrderProduct("700", "900", "Paperback")
		require.NoError(t, err)
	}
	_, err := sys.OrderProduct("701", "900", "")
	require.NoError(t, err)

	stats := sys.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "700", stats[0].Product.ID())
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "701", stats[1].Product.ID())
	assert.Equal(t, 1, stats[1].Count)
}

func TestStockNeverNegative(t *testing.T) {
	sys := newStore(t)

	// Hammer one variant well past its stock.
	for i := 0; i < 10; i++ {
		sys.OrderProduct("702", "900", "6Black")
	}
	shoes, _ := sys.FindProduct("702")
	assert.Equal(t, 0, shoes.Stock("6Black"))

	for i := 0; i < 10; i++ {
		sys.OrderProduct("700", "900", "Hardcover")
	}
	dune, _ := sys.FindProduct("700")
	assert.Equal(t, 0, dune.Stock("Hardcover"))
}

func TestCatalogOrderIsAscendingID(t *testing.T) {
	sys := newStore(t)
	assert.Equal(t, []string{"700", "701", "702", "703", "704"}, catalogIDs(sys))

	books := sys.Books()
	require.Len(t, books, 3)
	assert.Equal(t, "700", books[0].ID())

	general := sys.ProductsByCategory(shop.General)
	require.Len(t, general, 1)
	assert.Equal(t, "701", general[0].ID())
	assert.Empty(t, sys.ProductsByCategory(shop.Furniture))
}
