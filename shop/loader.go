package shop

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LoadCatalog reads the line-oriented catalog format and adds every
// record to the system, which assigns the ids. Book records are
//
//	BOOKS <name> <price> <paperbackStock> <hardcoverStock>
//	<title>:<author>:<year>
//
// and every other record is three lines: the category keyword, the
// product name, then "<price> <stock>". Blank lines between records
// are ignored. Malformed input is this adapter's error and is reported
// with its line number, outside the engine's failure taxonomy.
func LoadCatalog(r io.Reader, sys *System) error {
	sc := bufio.NewScanner(r)
	lineNo := 0

	nextLine := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	for {
		line, ok := nextLine()
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if fields[0] == "BOOKS" {
			if err := loadBook(fields, nextLine, sys); err != nil {
				return fmt.Errorf("catalog line %d: %w", lineNo, err)
			}
			continue
		}
		if err := loadPlainProduct(fields[0], nextLine, sys); err != nil {
			return fmt.Errorf("catalog line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

func loadBook(fields []string, nextLine func() (string, bool), sys *System) error {
	if len(fields) != 5 {
		return fmt.Errorf("book record needs name, price and two stock counts")
	}
	name := fields[1]
	price, err := decimal.NewFromString(fields[2])
	if err != nil {
		return fmt.Errorf("book price %q: %w", fields[2], err)
	}
	paperback, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("paperback stock %q: %w", fields[3], err)
	}
	hardcover, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("hardcover stock %q: %w", fields[4], err)
	}

	detail, ok := nextLine()
	if !ok {
		return fmt.Errorf("book record is missing its title:author:year line")
	}
	parts := strings.Split(detail, ":")
	if len(parts) != 3 {
		return fmt.Errorf("book detail %q is not title:author:year", detail)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return fmt.Errorf("book year %q: %w", parts[2], err)
	}

	_, err = sys.AddBook(name, price, paperback, hardcover, parts[0], parts[1], year)
	return err
}

func loadPlainProduct(keyword string, nextLine func() (string, bool), sys *System) error {
	category, err := ParseCategory(keyword)
	if err != nil {
		return err
	}
	name, ok := nextLine()
	if !ok {
		return fmt.Errorf("%s record is missing its name line", keyword)
	}
	priceLine, ok := nextLine()
	if !ok {
		return fmt.Errorf("%s record is missing its price/stock line", keyword)
	}
	fields := strings.Fields(priceLine)
	if len(fields) != 2 {
		return fmt.Errorf("price/stock line %q needs two fields", priceLine)
	}
	price, err := decimal.NewFromString(fields[0])
	if err != nil {
		return fmt.Errorf("price %q: %w", fields[0], err)
	}
	stock, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("stock %q: %w", fields[1], err)
	}
	_, err = sys.AddProduct(name, price, stock, category)
	return err
}
