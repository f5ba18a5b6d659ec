// Command shop runs the storefront as an interactive terminal session.
// It loads the catalog file (default products.txt, overridable as the
// first argument), seeds a few customers and hands the terminal to the
// command loop.
package main

import (
	"log"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"storefront-backend/cli"
	"storefront-backend/shop"
)

func main() {
	catalogPath := "products.txt"
	if len(os.Args) > 1 {
		catalogPath = os.Args[1]
	}

	sys := shop.New()
	f, err := os.Open(catalogPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := shop.LoadCatalog(f, sys); err != nil {
		log.Fatal(err)
	}
	f.Close()

	// The catalog file has no shoe records; stock one pair per size so
	// ORDERSHOES has something to sell.
	shoes, err := sys.AddShoes("Oxford Leather Shoe", decimal.RequireFromString("89.00"))
	if err != nil {
		log.Fatal(err)
	}
	for size := 6; size <= 10; size++ {
		for _, colour := range []string{"Black", "Brown"} {
			shoes.SetStock(1, strconv.Itoa(size)+colour)
		}
	}

	seed := []struct{ name, address string }{
		{"Nora Byrne", "12 Quay Street, Galway"},
		{"Omar Haddad", "3 Mill Road, Leeds"},
		{"Priya Raman", "48 Lakeview Terrace, Pune"},
		{"Tomas Lindqvist", "Storgatan 7, Umea"},
	}
	for _, s := range seed {
		if _, err := sys.CreateCustomer(s.name, s.address); err != nil {
			log.Fatal(err)
		}
	}

	cli.New(sys, os.Stdin, os.Stdout).Run()
}
