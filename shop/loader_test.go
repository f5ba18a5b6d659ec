package shop_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/shop"
)

func TestLoadCatalog(t *testing.T) {
	f, err := os.Open("testdata/products.txt")
	require.NoError(t, err)
	defer f.Close()

	sys := shop.New()
	require.NoError(t, shop.LoadCatalog(f, sys))

	products := sys.Products()
	require.Len(t, products, 5)

	lamp := products[0]
	assert.Equal(t, "700", lamp.ID())
	assert.Equal(t, "Desk Lamp", lamp.Name())
	assert.Equal(t, shop.General, lamp.Category())
	assert.Equal(t, 12, lamp.Stock(""))
	assert.Equal(t, "18.99", lamp.Price().String())

	dune := products[2]
	assert.Equal(t, shop.Books, dune.Category())
	assert.Equal(t, "Frank Herbert", dune.Author())
	assert.Equal(t, 1965, dune.Year())
	assert.Equal(t, 4, dune.Stock("Paperback"))
	assert.Equal(t, 2, dune.Stock("Hardcover"))

	assert.Equal(t, shop.Computers, products[3].Category())
	assert.Equal(t, shop.Clothing, products[4].Category())
}

func TestLoadCatalogMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown category", "GROCERIES\nMilk\n2.50 10\n"},
		{"truncated record", "GENERAL\nDesk Lamp\n"},
		{"bad price", "GENERAL\nDesk Lamp\nabc 10\n"},
		{"bad stock", "GENERAL\nDesk Lamp\n18.99 many\n"},
		{"short book record", "BOOKS Dune 15.99 4\nDune:Frank Herbert:1965\n"},
		{"missing book detail", "BOOKS Dune 15.99 4 2\n"},
		{"bad book detail", "BOOKS Dune 15.99 4 2\nDune by Frank Herbert\n"},
		{"bad book year", "BOOKS Dune 15.99 4 2\nDune:Frank Herbert:MCMLXV\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := shop.LoadCatalog(strings.NewReader(tc.input), shop.New())
			assert.Error(t, err)
		})
	}
}

func TestLoadCatalogSkipsBlankLines(t *testing.T) {
	input := "\nGENERAL\n\nDesk Lamp\n\n18.99 12\n\n"
	sys := shop.New()
	require.NoError(t, shop.LoadCatalog(strings.NewReader(input), sys))
	require.Len(t, sys.Products(), 1)
}
