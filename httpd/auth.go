package httpd

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/shop"
)

// Credentials stay in the adapter: the engine's Customer is just id,
// name, address and cart, and knows nothing about passwords.

type JWTClaims struct {
	CustomerID string `json:"customerId"`
	jwt.StandardClaims
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Address  string `json:"address"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(400, gin.H{"error": "email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.creds[req.Email]; taken {
		c.JSON(409, gin.H{"error": "email already registered"})
		return
	}
	cust, err := s.sys.CreateCustomer(req.Name, req.Address)
	if err != nil {
		renderError(c, err)
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(500, gin.H{"error": "could not store credentials"})
		return
	}
	s.creds[req.Email] = credential{passwordHash: hashed, customerID: cust.ID()}
	s.log.Info("customer registered", zap.String("customerId", cust.ID()))
	c.JSON(200, toCustomerView(cust))
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid input"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cred, ok := s.creds[req.Email]
	if !ok {
		c.JSON(401, gin.H{"error": "user not found"})
		return
	}
	if bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(req.Password)) != nil {
		c.JSON(401, gin.H{"error": "wrong password"})
		return
	}
	cust, err := s.sys.FindCustomer(cred.customerID)
	if err != nil {
		renderError(c, err)
		return
	}

	claims := JWTClaims{
		CustomerID: cred.customerID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.jwtSecret)
	if err != nil {
		c.JSON(500, gin.H{"error": "could not sign token"})
		return
	}
	c.JSON(200, gin.H{"customer": toCustomerView(cust), "token": tokenStr})
}

func (s *Server) authMiddleware(c *gin.Context) {
	tokenStr := c.GetHeader("Authorization")
	if len(tokenStr) < 8 {
		c.AbortWithStatusJSON(401, gin.H{"error": "missing token"})
		return
	}
	tokenStr = tokenStr[7:] // strip "Bearer "
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
		return
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		c.Set("customerId", claims.CustomerID)
		c.Next()
	} else {
		c.AbortWithStatusJSON(401, gin.H{"error": "invalid token"})
	}
}

func toCustomerView(cust *shop.Customer) gin.H {
	return gin.H{
		"id":      cust.ID(),
		"name":    cust.Name(),
		"address": cust.ShippingAddress(),
	}
}
