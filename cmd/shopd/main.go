// Command shopd serves the storefront over HTTP.
package main

import (
	"os"

	"go.uber.org/zap"

	"storefront-backend/httpd"
	"storefront-backend/shop"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := httpd.ConfigFromEnv()

	sys := shop.New()
	f, err := os.Open(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("open catalog", zap.Error(err))
	}
	if err := shop.LoadCatalog(f, sys); err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	f.Close()
	logger.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("products", len(sys.Products())),
	)

	srv := httpd.New(sys, cfg, logger)
	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := srv.Router().Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
