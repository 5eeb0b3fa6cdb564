// Package catalog carga un catálogo inicial (bodegas, productos y stock) desde YAML
// y lo aplica sobre cualquier TxRunner.
package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// File formato del archivo de catálogo.
type File struct {
	Warehouses []Warehouse `yaml:"warehouses"`
	Products   []Product   `yaml:"products"`
	Stock      []Stock     `yaml:"stock"`
}

type Warehouse struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Product decimales como texto para no depender de cómo YAML resuelve los números.
type Product struct {
	ID           string `yaml:"id"`
	SKU          string `yaml:"sku"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	ReorderPoint string `yaml:"reorder_point"`
	UnitCost     string `yaml:"unit_cost"`
}

type Stock struct {
	ProductID   string `yaml:"product_id"`
	WarehouseID string `yaml:"warehouse_id"`
	Quantity    int64  `yaml:"quantity"`
}

// Catalog catálogo validado, listo para aplicar.
type Catalog struct {
	Warehouses []*entity.Warehouse
	Products   []*entity.Product
	Stock      []*entity.StockLine
}

// Load lee y valida un archivo de catálogo.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodifica el YAML. Archivos que no son UTF-8 se leen como ISO-8859-1
// y todos los nombres se normalizan a NFC.
func Parse(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	if !utf8.Valid(raw) {
		raw, err = io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("decodificar ISO-8859-1: %w", err)
		}
	}
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decodificar YAML: %w", err)
	}
	return file.build()
}

func (f File) build() (*Catalog, error) {
	c := &Catalog{}
	warehouses := make(map[string]bool, len(f.Warehouses))
	for i, w := range f.Warehouses {
		id, ok := entity.CanonicalID(w.ID)
		if !ok {
			return nil, fmt.Errorf("warehouses[%d]: id inválido %q", i, w.ID)
		}
		w.ID = id
		name := clean(w.Name)
		if name == "" {
			return nil, fmt.Errorf("warehouses[%d]: name requerido", i)
		}
		if warehouses[w.ID] {
			return nil, fmt.Errorf("warehouses[%d]: id duplicado %s", i, w.ID)
		}
		warehouses[w.ID] = true
		c.Warehouses = append(c.Warehouses, &entity.Warehouse{ID: w.ID, Name: name})
	}

	products := make(map[string]bool, len(f.Products))
	skus := make(map[string]bool, len(f.Products))
	for i, p := range f.Products {
		id, ok := entity.CanonicalID(p.ID)
		if !ok {
			return nil, fmt.Errorf("products[%d]: id inválido %q", i, p.ID)
		}
		p.ID = id
		sku := strings.TrimSpace(p.SKU)
		name := clean(p.Name)
		if sku == "" || name == "" {
			return nil, fmt.Errorf("products[%d]: sku y name son requeridos", i)
		}
		if products[p.ID] || skus[sku] {
			return nil, fmt.Errorf("products[%d]: id o sku duplicado", i)
		}
		rp, err := parseDecimal(p.ReorderPoint)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: reorder_point: %w", i, err)
		}
		cost, err := parseDecimal(p.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: unit_cost: %w", i, err)
		}
		products[p.ID] = true
		skus[sku] = true
		c.Products = append(c.Products, &entity.Product{
			ID: p.ID, SKU: sku, Name: name, Category: clean(p.Category), ReorderPoint: rp, UnitCost: cost,
		})
	}

	type key struct{ p, w string }
	seen := make(map[key]bool, len(f.Stock))
	for i, s := range f.Stock {
		if id, ok := entity.CanonicalID(s.ProductID); ok {
			s.ProductID = id
		}
		if id, ok := entity.CanonicalID(s.WarehouseID); ok {
			s.WarehouseID = id
		}
		if !products[s.ProductID] {
			return nil, fmt.Errorf("stock[%d]: producto %s no está en el catálogo", i, s.ProductID)
		}
		if !warehouses[s.WarehouseID] {
			return nil, fmt.Errorf("stock[%d]: bodega %s no está en el catálogo", i, s.WarehouseID)
		}
		if s.Quantity < 0 {
			return nil, fmt.Errorf("stock[%d]: quantity negativa", i)
		}
		k := key{s.ProductID, s.WarehouseID}
		if seen[k] {
			return nil, fmt.Errorf("stock[%d]: línea duplicada", i)
		}
		seen[k] = true
		c.Stock = append(c.Stock, &entity.StockLine{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Quantity: s.Quantity})
	}
	return c, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("no puede ser negativo")
	}
	return d, nil
}

// clean recorta espacios y normaliza a NFC ("Bogotá" == "Bogotá").
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Apply escribe el catálogo en una sola transacción (upsert por id).
func Apply(ctx context.Context, tx appinventory.TxRunner, c *Catalog, at time.Time) error {
	return tx.Run(ctx, func(repos appinventory.TxRepos) error {
		for _, w := range c.Warehouses {
			w.CreatedAt, w.UpdatedAt = at, at
			if err := repos.Warehouses.Upsert(ctx, w); err != nil {
				return fmt.Errorf("bodega %s: %w", w.ID, err)
			}
		}
		for _, p := range c.Products {
			p.CreatedAt, p.UpdatedAt = at, at
			if err := repos.Products.Upsert(ctx, p); err != nil {
				return fmt.Errorf("producto %s: %w", p.SKU, err)
			}
		}
		for _, s := range c.Stock {
			s.UpdatedAt = at
			if err := repos.Stock.Upsert(ctx, s); err != nil {
				return fmt.Errorf("stock %s/%s: %w", s.ProductID, s.WarehouseID, err)
			}
		}
		return nil
	})
}
