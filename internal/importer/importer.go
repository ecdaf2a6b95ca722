package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodnet/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type SellerResolver interface {
	GetByEmail(ctx context.Context, regionID, email string) (*domain.User, error)
}

// CSVImporter reads seller product lists in CSV form and inserts or
// updates the region's catalog. Expected columns: key, name,
// description, unit, amount, price_net, vat_rate, deposit_net,
// deposit_vat_rate, seller_email.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	sellers  SellerResolver
	regionID string
}

func NewCSVImporter(r io.Reader, products ProductWriter, sellers SellerResolver, regionID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
		sellers:  sellers,
		regionID: regionID,
	}
}

// Run parses CSV rows and upserts one product per row. It returns the
// number of imported products.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"key", "name", "price_net", "seller_email"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing column %q", required)
		}
	}

	sellerIDs := map[string]string{}
	imported := 0
	line := 1

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		get := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		email := strings.ToLower(get("seller_email"))
		sellerID, ok := sellerIDs[email]
		if !ok {
			seller, err := i.sellers.GetByEmail(ctx, i.regionID, email)
			if err != nil {
				return imported, fmt.Errorf("row %d: resolve seller %q: %w", line, email, err)
			}
			sellerID = seller.ID
			sellerIDs[email] = sellerID
		}

		product := domain.Product{
			RegionID:    i.regionID,
			SellerID:    sellerID,
			Key:         get("key"),
			Name:        get("name"),
			Description: get("description"),
			Unit:        defaultStr(get("unit"), "piece"),
		}
		if product.Key == "" || product.Name == "" {
			return imported, fmt.Errorf("row %d: key and name are required", line)
		}
		if product.Amount, err = parseDecimal(get("amount"), "1"); err != nil {
			return imported, fmt.Errorf("row %d: amount: %w", line, err)
		}
		if product.PriceNet, err = parseDecimal(get("price_net"), ""); err != nil {
			return imported, fmt.Errorf("row %d: price_net: %w", line, err)
		}
		if product.VATRate, err = parseDecimal(get("vat_rate"), "7"); err != nil {
			return imported, fmt.Errorf("row %d: vat_rate: %w", line, err)
		}
		if product.DepositNet, err = parseDecimal(get("deposit_net"), "0"); err != nil {
			return imported, fmt.Errorf("row %d: deposit_net: %w", line, err)
		}
		if product.DepositVATRate, err = parseDecimal(get("deposit_vat_rate"), "19"); err != nil {
			return imported, fmt.Errorf("row %d: deposit_vat_rate: %w", line, err)
		}

		if _, err := i.products.Upsert(ctx, product); err != nil {
			return imported, fmt.Errorf("row %d: upsert %q: %w", line, product.Key, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseDecimal(v, def string) (decimal.Decimal, error) {
	if v == "" {
		if def == "" {
			return decimal.Decimal{}, errors.New("required")
		}
		v = def
	}
	return decimal.NewFromString(v)
}
