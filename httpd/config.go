package httpd

import (
	"os"
	"strings"
)

// Config carries the server settings. Everything comes from the
// environment with workable defaults for local runs.
type Config struct {
	Addr         string
	JWTSecret    string
	AllowOrigins []string
	CatalogPath  string
}

func ConfigFromEnv() Config {
	cfg := Config{
		Addr:         ":8080",
		JWTSecret:    "SECRET",
		AllowOrigins: []string{"*"},
		CatalogPath:  "products.txt",
	}
	if v := os.Getenv("SHOP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SHOP_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("SHOP_CORS_ORIGINS"); v != "" {
		cfg.AllowOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("SHOP_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	return cfg
}
