package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"bosko-storefront/internal/domain"
)

// CatalogWriter creates catalog entries in the backend.
type CatalogWriter interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in domain.CategoryInput) (*domain.Category, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
}

type Kind string

const (
	KindProducts   Kind = "products"
	KindCategories Kind = "categories"
)

// DetectKind peeks at the header row: a price column means products.
func DetectKind(r io.Reader) (Kind, error) {
	headers, err := csv.NewReader(r).Read()
	if err != nil {
		return "", fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["price"]; ok {
		return KindProducts, nil
	}
	if _, ok := index["name"]; ok {
		return KindCategories, nil
	}
	return "", errors.New("unrecognized csv layout: expected a name column")
}

// CSVImporter reads catalog CSV exports and creates the rows in the backend.
// Categories are matched by name, case-insensitively, and created on first use.
type CSVImporter struct {
	reader     *csv.Reader
	catalog    CatalogWriter
	logger     *log.Logger
	categories map[string]int64
}

func NewCSVImporter(r io.Reader, catalog CatalogWriter, logger *log.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
		logger:  logger,
	}
}

type productRow struct {
	line        int
	Name        string
	Description string
	Price       domain.Money
	Stock       int
	Image       string
	Category    string
}

// Run imports every row and returns how many entries were created.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing name column")
	}
	if err := i.loadCategories(ctx); err != nil {
		return 0, err
	}
	_, products := index["price"]

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		if !products {
			created, err := i.ensureCategory(ctx, pick(record, index, "name"), pick(record, index, "description"), pick(record, index, "image"))
			if err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
			if created {
				imported++
			}
			continue
		}

		row, err := parseProduct(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}
		if err := i.saveProduct(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) loadCategories(ctx context.Context) error {
	existing, err := i.catalog.Categories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	i.categories = make(map[string]int64, len(existing))
	for _, c := range existing {
		i.categories[categoryKey(c.Name)] = c.ID
	}
	return nil
}

// ensureCategory reports whether it had to create the category.
func (i *CSVImporter) ensureCategory(ctx context.Context, name, description, image string) (bool, error) {
	key := categoryKey(name)
	if key == "" {
		return false, nil
	}
	if _, ok := i.categories[key]; ok {
		return false, nil
	}
	created, err := i.catalog.CreateCategory(ctx, domain.CategoryInput{
		Name:        strings.TrimSpace(name),
		Description: description,
		Image:       image,
	})
	if err != nil {
		return false, fmt.Errorf("create category %q: %w", name, err)
	}
	i.categories[key] = created.ID
	i.logger.Printf("created category %q (id=%d)", created.Name, created.ID)
	return true, nil
}

func (i *CSVImporter) saveProduct(ctx context.Context, row *productRow) error {
	in := domain.ProductInput{
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Stock:       row.Stock,
		Image:       row.Image,
	}
	if row.Category != "" {
		if _, err := i.ensureCategory(ctx, row.Category, "", ""); err != nil {
			return fmt.Errorf("line %d: %w", row.line, err)
		}
		id := i.categories[categoryKey(row.Category)]
		in.CategoryID = &id
	}
	if _, err := i.catalog.CreateProduct(ctx, in); err != nil {
		return fmt.Errorf("line %d: create product %q: %w", row.line, row.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseProduct returns nil for blank rows.
func parseProduct(record []string, index map[string]int, line int) (*productRow, error) {
	row := &productRow{
		line:        line,
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		Category:    pick(record, index, "category"),
	}
	priceStr := pick(record, index, "price")
	if row.Name == "" && priceStr == "" {
		return nil, nil
	}
	if row.Name == "" {
		return nil, fmt.Errorf("line %d: missing name", line)
	}
	price, err := domain.ParseMoney(priceStr)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("line %d: invalid price %q", line, priceStr)
	}
	row.Price = price
	if s := pick(record, index, "stock"); s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("line %d: invalid stock %q", line, s)
		}
		row.Stock = stock
	}
	return row, nil
}

func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
