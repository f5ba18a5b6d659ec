package httpd

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/shop"
)

type productView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Title    string `json:"title,omitempty"`
	Author   string `json:"author,omitempty"`
	Year     int    `json:"year,omitempty"`
}

func toProductView(p *shop.Product) productView {
	return productView{
		ID:       p.ID(),
		Name:     p.Name(),
		Price:    p.Price().String(),
		Category: p.Category().String(),
		Title:    p.Title(),
		Author:   p.Author(),
		Year:     p.Year(),
	}
}

func toProductViews(products []*shop.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	return out
}

type orderView struct {
	Number     string `json:"number"`
	ProductID  string `json:"productId"`
	Product    string `json:"product"`
	CustomerID string `json:"customerId"`
	Options    string `json:"options,omitempty"`
	Status     string `json:"status"`
}

func toOrderViews(orders []*shop.Order, status string) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderView{
			Number:     o.Number(),
			ProductID:  o.Product().ID(),
			Product:    o.Product().Name(),
			CustomerID: o.Customer().ID(),
			Options:    o.Options(),
			Status:     status,
		})
	}
	return out
}

// ----- Catalog -----

// listProducts serves the catalog. sort=price or sort=name returns a
// sorted copy; category+rating filters to products whose average
// rating reaches the bar. Plain calls get catalog order.
func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category := c.Query("category"); category != "" {
		// With a rating bar this is the "at least N stars" listing;
		// without one it is a plain category browse.
		if ratingStr := c.Query("rating"); ratingStr != "" {
			rating, err := strconv.Atoi(ratingStr)
			if err != nil {
				c.JSON(400, gin.H{"error": "rating must be a number"})
				return
			}
			products, err := s.sys.ProductsAbove(category, rating)
			if err != nil {
				renderError(c, err)
				return
			}
			c.JSON(200, toProductViews(products))
			return
		}
		cat, err := shop.ParseCategory(category)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(200, toProductViews(s.sys.ProductsByCategory(cat)))
		return
	}

	switch c.Query("sort") {
	case "price":
		c.JSON(200, toProductViews(s.sys.SortByPrice()))
	case "name":
		c.JSON(200, toProductViews(s.sys.SortByName()))
	case "":
		c.JSON(200, toProductViews(s.sys.Products()))
	default:
		c.JSON(400, gin.H{"error": "sort must be price or name"})
	}
}

func (s *Server) getProduct(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.sys.FindProduct(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, toProductView(p))
}

func (s *Server) listBooks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if author := c.Query("author"); author != "" {
		books, err := s.sys.BooksByAuthor(author)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(200, toProductViews(books))
		return
	}
	c.JSON(200, toProductViews(s.sys.Books()))
}

func (s *Server) listCustomers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0)
	for _, cust := range s.sys.Customers() {
		out = append(out, toCustomerView(cust))
	}
	c.JSON(200, out)
}

func (s *Server) orderStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]gin.H, 0)
	for _, st := range s.sys.Stats() {
		out = append(out, gin.H{
			"productId":    st.Product.ID(),
			"product":      st.Product.Name(),
			"timesOrdered": st.Count,
		})
	}
	c.JSON(200, out)
}

// ----- Ratings -----

func (s *Server) getRatings(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.sys.FindProduct(c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	resp := gin.H{"ratings": p.Ratings()}
	// JSON has no NaN; an unrated product reports a null average.
	if avg := p.AverageRating(); !math.IsNaN(avg) {
		resp["average"] = avg
	} else {
		resp["average"] = nil
	}
	c.JSON(200, resp)
}

func (s *Server) rateProduct(c *gin.Context) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sys.RateProduct(c.Param("id"), req.Rating); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "rated"})
}

// ----- Cart -----

func (s *Server) getCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.sys.CartItems(c.GetString("customerId"))
	if err != nil {
		renderError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"productId": item.Product.ID(),
			"product":   item.Product.Name(),
			"options":   item.Options,
		})
	}
	c.JSON(200, out)
}

func (s *Server) addToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Options   string `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sys.AddToCart(req.ProductID, c.GetString("customerId"), req.Options); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "added"})
}

func (s *Server) removeCartItem(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.sys.RemoveFromCart(c.Param("productId"), c.GetString("customerId"))
	if err != nil {
		renderError(c, err)
		return
	}
	if !removed {
		c.JSON(404, gin.H{"error": "product not in cart"})
		return
	}
	c.JSON(200, gin.H{"status": "removed"})
}

// checkoutCart places every cart line in order. The engine stops at
// the first failing line and keeps the cart, so a 409 here means the
// cart is still intact and can be retried after restocking.
func (s *Server) checkoutCart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sys.OrderCartItems(c.GetString("customerId")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "ordered"})
}

// ----- Orders -----

func (s *Server) getOrders(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, shipped, err := s.sys.OrderHistory(c.GetString("customerId"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{
		"active":  toOrderViews(active, "Active"),
		"shipped": toOrderViews(shipped, "Shipped"),
	})
}

func (s *Server) placeOrder(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Options   string `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	number, err := s.sys.OrderProduct(req.ProductID, c.GetString("customerId"), req.Options)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{"orderNumber": number})
}

func (s *Server) shipOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.sys.ShipOrder(c.Param("orderNumber"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, toOrderViews([]*shop.Order{order}, "Shipped")[0])
}

func (s *Server) cancelOrder(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sys.CancelOrder(c.Param("orderNumber")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(200, gin.H{"status": "cancelled"})
}
