// Package cli is the line-oriented front end: it reads commands,
// prompts for their fields, calls the engine and prints. Every engine
// failure is caught, printed and survived; only Q/QUIT ends the loop.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"storefront-backend/shop"
)

type CLI struct {
	sys *shop.System
	in  *bufio.Scanner
	out io.Writer
}

func New(sys *shop.System, in io.Reader, out io.Writer) *CLI {
	return &CLI{sys: sys, in: bufio.NewScanner(in), out: out}
}

// Run processes commands until Q/QUIT or end of input.
func (c *CLI) Run() {
	fmt.Fprint(c.out, ">")
	for c.in.Scan() {
		action := strings.TrimSpace(c.in.Text())
		if action == "" {
			fmt.Fprint(c.out, ">")
			continue
		}
		if strings.EqualFold(action, "Q") || strings.EqualFold(action, "QUIT") {
			return
		}
		c.dispatch(action)
		fmt.Fprint(c.out, ">")
	}
}

func (c *CLI) dispatch(action string) {
	switch strings.ToUpper(action) {
	case "PRODS":
		c.printProducts(c.sys.Products())
	case "BOOKS":
		c.printProducts(c.sys.Books())
	case "CUSTS":
		for _, cust := range c.sys.Customers() {
			c.printCustomer(cust)
		}
	case "ORDERS":
		c.printOrders(c.sys.Orders(), "Active")
	case "SHIPPED":
		c.printOrders(c.sys.ShippedOrders(), "Shipped")
	case "NEWCUST":
		c.newCustomer()
	case "SHIP":
		c.shipOrder()
	case "CUSTORDERS":
		c.orderHistory()
	case "ORDER":
		c.orderProduct()
	case "ORDERBOOK":
		c.orderWithOptions("Format [Paperback Hardcover EBook]: ")
	case "ORDERSHOES":
		c.orderWithOptions("Size and Colour [e.g. 6Black 10Brown]: ")
	case "CANCEL":
		c.cancelOrder()
	case "BOOKSBYAUTHOR":
		c.booksByAuthor()
	case "ADDTOCART":
		c.addToCart()
	case "REMCARTITEM":
		c.removeCartItem()
	case "PRINTCART":
		c.printCart()
	case "ORDERITEMS":
		c.orderItems()
	case "STATS":
		c.printStats()
	case "RATE":
		c.rateProduct()
	case "PRINTRATINGS":
		c.printRatings()
	case "PRINTAVGRATING":
		c.printAverageRating()
	case "PRINTBYPRICE":
		c.printProducts(c.sys.SortByPrice())
	case "PRINTBYNAME":
		c.printProducts(c.sys.SortByName())
	case "SORTCUSTS":
		c.sys.SortCustomersByName()
	default:
		fmt.Fprintf(c.out, "Unknown command: %s\n", action)
	}
}

func (c *CLI) readLine(prompt string) string {
	fmt.Fprint(c.out, prompt)
	if c.in.Scan() {
		return strings.TrimSpace(c.in.Text())
	}
	return ""
}

func (c *CLI) readInt(prompt string) (int, bool) {
	raw := c.readLine(prompt)
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintf(c.out, "Not a number: %s\n", raw)
		return 0, false
	}
	return n, true
}

// ----- commands -----

func (c *CLI) newCustomer() {
	name := c.readLine("Name: ")
	address := c.readLine("Address: ")
	if _, err := c.sys.CreateCustomer(name, address); err != nil {
		fmt.Fprintln(c.out, err)
	}
}

func (c *CLI) shipOrder() {
	number := c.readLine("Order Number: ")
	order, err := c.sys.ShipOrder(number)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.printOrder(order, "Shipped")
}

func (c *CLI) orderHistory() {
	customerID := c.readLine("Customer Id: ")
	active, shipped, err := c.sys.OrderHistory(customerID)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Current Orders of Customer %s\n", customerID)
	c.printOrders(active, "Active")
	fmt.Fprintf(c.out, "Shipped Orders of Customer %s\n", customerID)
	c.printOrders(shipped, "Shipped")
}

func (c *CLI) orderProduct() {
	productID := c.readLine("Product Id: ")
	customerID := c.readLine("Customer Id: ")
	number, err := c.sys.OrderProduct(productID, customerID, "")
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Order #%s\n", number)
}

func (c *CLI) orderWithOptions(optionsPrompt string) {
	productID := c.readLine("Product Id: ")
	customerID := c.readLine("Customer Id: ")
	options := c.readLine(optionsPrompt)
	number, err := c.sys.OrderProduct(productID, customerID, options)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Order #%s\n", number)
}

func (c *CLI) cancelOrder() {
	number := c.readLine("Order Number: ")
	if err := c.sys.CancelOrder(number); err != nil {
		fmt.Fprintln(c.out, err)
	}
}

func (c *CLI) booksByAuthor() {
	author := c.readLine("Author: ")
	books, err := c.sys.BooksByAuthor(author)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.printProducts(books)
}

func (c *CLI) addToCart() {
	productID := c.readLine("Product Id: ")
	customerID := c.readLine("Customer Id: ")
	options := c.readLine("Options (blank if none): ")
	if err := c.sys.AddToCart(productID, customerID, options); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Product %s added to Customer %s's cart\n", productID, customerID)
}

func (c *CLI) removeCartItem() {
	productID := c.readLine("Product Id: ")
	customerID := c.readLine("Customer Id: ")
	removed, err := c.sys.RemoveFromCart(productID, customerID)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if !removed {
		fmt.Fprintf(c.out, "Product %s was not found in Customer %s's cart\n", productID, customerID)
		return
	}
	fmt.Fprintf(c.out, "Product %s removed from Customer %s's cart\n", productID, customerID)
}

func (c *CLI) printCart() {
	customerID := c.readLine("Customer Id: ")
	items, err := c.sys.CartItems(customerID)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Customer %s's Cart:\n", customerID)
	for _, item := range items {
		c.printProduct(item.Product)
	}
}

func (c *CLI) orderItems() {
	customerID := c.readLine("Customer Id: ")
	if err := c.sys.OrderCartItems(customerID); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Customer %s's cart has been ordered\n", customerID)
}

func (c *CLI) printStats() {
	for _, st := range c.sys.Stats() {
		fmt.Fprintf(c.out, "Name: %-20s Id: %-5s Times Ordered: %d\n",
			st.Product.Name(), st.Product.ID(), st.Count)
	}
}

func (c *CLI) rateProduct() {
	productID := c.readLine("Product Id: ")
	rating, ok := c.readInt("Rating [1-5]: ")
	if !ok {
		return
	}
	if err := c.sys.RateProduct(productID, rating); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	fmt.Fprintf(c.out, "Rated Product %s %d/5\n", productID, rating)
}

func (c *CLI) printRatings() {
	productID := c.readLine("Product Id: ")
	ratings, err := c.sys.Ratings(productID)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	for star := 1; star <= 5; star++ {
		fmt.Fprintf(c.out, "%d, %d Star Ratings\n", ratings[star], star)
	}
	prod, err := c.sys.FindProduct(productID)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	if avg := prod.AverageRating(); math.IsNaN(avg) {
		fmt.Fprintf(c.out, "Product %s has no ratings yet\n", productID)
	} else {
		fmt.Fprintf(c.out, "Product %s has an average rating of %.1f\n", productID, avg)
	}
}

func (c *CLI) printAverageRating() {
	category := c.readLine("Category: ")
	rating, ok := c.readInt("Minimum Rating [1-5]: ")
	if !ok {
		return
	}
	products, err := c.sys.ProductsAbove(category, rating)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	for _, p := range products {
		fmt.Fprintf(c.out, "Id: %-5s Category: %-9s Name: %-20s Price: %8s Avg Rating: %.1f\n",
			p.ID(), p.Category(), p.Name(), p.Price(), p.AverageRating())
	}
}

// ----- printing -----

func (c *CLI) printProducts(products []*shop.Product) {
	for _, p := range products {
		c.printProduct(p)
	}
}

func (c *CLI) printProduct(p *shop.Product) {
	fmt.Fprintf(c.out, "Id: %-5s Category: %-9s Name: %-20s Price: %8s",
		p.ID(), p.Category(), p.Name(), p.Price())
	if p.Category() == shop.Books {
		fmt.Fprintf(c.out, "  Paperback Stock: %-4d Hardcover Stock: %-4d Title: %s  Author: %s  Year: %d",
			p.Stock(shop.Paperback), p.Stock(shop.Hardcover), p.Title(), p.Author(), p.Year())
	}
	fmt.Fprintln(c.out)
}

func (c *CLI) printCustomer(cust *shop.Customer) {
	fmt.Fprintf(c.out, "Name: %-20s ID: %-4s Address: %s\n",
		cust.Name(), cust.ID(), cust.ShippingAddress())
}

func (c *CLI) printOrders(orders []*shop.Order, status string) {
	for _, o := range orders {
		c.printOrder(o, status)
	}
}

func (c *CLI) printOrder(o *shop.Order, status string) {
	options := o.Options()
	if options == "" {
		options = "-"
	}
	fmt.Fprintf(c.out, "Order #%-5s Product: %-20s Options: %-10s Customer: %s (%s) Status: %s\n",
		o.Number(), o.Product().Name(), options, o.Customer().Name(), o.Customer().ID(), status)
}
