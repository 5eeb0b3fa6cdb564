// Package memory implementa los puertos de persistencia sobre un estado en memoria,
// opcionalmente respaldado por un archivo JSON que se reescribe completo en cada commit.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	appinventory "github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/inventory"
)

var _ appinventory.TxRunner = (*Store)(nil)

// state colecciones del store. Transfers y Alerts se guardan en orden de inserción.
type state struct {
	products    map[string]entity.Product
	warehouses  map[string]entity.Warehouse
	ledger      *inventory.Ledger
	transfers   []entity.Transfer
	alerts      map[string]*entity.Alert
	transferSeq int64
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		ledger:     inventory.NewLedger(),
		alerts:     make(map[string]*entity.Alert),
	}
}

func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(s.products)),
		warehouses:  make(map[string]entity.Warehouse, len(s.warehouses)),
		ledger:      s.ledger.Clone(),
		transfers:   append([]entity.Transfer(nil), s.transfers...),
		alerts:      make(map[string]*entity.Alert, len(s.alerts)),
		transferSeq: s.transferSeq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.alerts {
		c.alerts[k] = v.Clone()
	}
	return c
}

// Store estado transaccional en memoria. Escritura única: un solo Run a la vez.
// Cada Run trabaja sobre una copia del estado y la publica solo si fn termina sin error.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	state *state
	path  string
}

// New store vacío, sin persistencia.
func New() *Store {
	return &Store{state: newState()}
}

// Open carga el archivo si existe y persiste cada commit en él.
func Open(path string) (*Store, error) {
	s := &Store{state: newState(), path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	st, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("decodificar %s: %w", path, err)
	}
	s.state = st
	return s, nil
}

// Run ejecuta fn con repositorios sobre una copia del estado; commit = reemplazo + persistencia.
func (s *Store) Run(ctx context.Context, fn func(repos appinventory.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	if err := fn(reposFor(work)); err != nil {
		return err
	}
	if s.path != "" {
		if err := writeState(s.path, work); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

func reposFor(st *state) appinventory.TxRepos {
	return appinventory.TxRepos{
		Products:   &ProductRepo{view: fixed(st)},
		Warehouses: &WarehouseRepo{view: fixed(st)},
		Stock:      &StockRepo{view: fixed(st)},
		Transfers:  &TransferRepo{view: fixed(st)},
		Alerts:     &AlertRepo{view: fixed(st)},
		Locks:      noLocks{},
	}
}

// view da acceso al estado: fijo dentro de una tx, o el publicado (bajo lectura) fuera de ella.
type view func(fn func(st *state, write bool) error) error

func fixed(st *state) view {
	return func(fn func(*state, bool) error) error { return fn(st, true) }
}

func (s *Store) committed() view {
	return func(fn func(*state, bool) error) error {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return fn(s.state, false)
	}
}

var errReadOnly = errors.New("memory: escritura fuera de transacción")

// Products repositorio de lectura sobre el estado publicado.
func (s *Store) Products() *ProductRepo { return &ProductRepo{view: s.committed()} }

// Warehouses repositorio de lectura sobre el estado publicado.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{view: s.committed()} }

// Stock repositorio de lectura sobre el estado publicado.
func (s *Store) Stock() *StockRepo { return &StockRepo{view: s.committed()} }

// Transfers repositorio de lectura sobre el estado publicado.
func (s *Store) Transfers() *TransferRepo { return &TransferRepo{view: s.committed()} }

// Alerts repositorio de lectura sobre el estado publicado.
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{view: s.committed()} }

// noLocks: Run ya serializa todo el store.
type noLocks struct{}

func (noLocks) LockProduct(context.Context, string) error { return nil }
func (noLocks) LockAlerts(context.Context) error          { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Formato de archivo: un documento con una colección por nombre.
// ──────────────────────────────────────────────────────────────────────────────

type document struct {
	Products    []entity.Product   `json:"products"`
	Warehouses  []entity.Warehouse `json:"warehouses"`
	Stock       []entity.StockLine `json:"stock"`
	Transfers   []entity.Transfer  `json:"transfers"` // más reciente primero
	Alerts      []*entity.Alert    `json:"alerts"`
	TransferSeq int64              `json:"transfer_seq"`
}

func encodeState(st *state) ([]byte, error) {
	doc := document{
		Products:    make([]entity.Product, 0, len(st.products)),
		Warehouses:  make([]entity.Warehouse, 0, len(st.warehouses)),
		Stock:       st.ledger.Lines(),
		Transfers:   newestFirst(st.transfers),
		Alerts:      sortedAlerts(st.alerts),
		TransferSeq: st.transferSeq,
	}
	for _, p := range st.products {
		doc.Products = append(doc.Products, p)
	}
	sort.Slice(doc.Products, func(i, j int) bool { return doc.Products[i].ID < doc.Products[j].ID })
	for _, w := range st.warehouses {
		doc.Warehouses = append(doc.Warehouses, w)
	}
	sort.Slice(doc.Warehouses, func(i, j int) bool { return doc.Warehouses[i].ID < doc.Warehouses[j].ID })
	return json.MarshalIndent(doc, "", "  ")
}

func decodeState(data []byte) (*state, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	st := newState()
	for _, p := range doc.Products {
		st.products[p.ID] = p
	}
	for _, w := range doc.Warehouses {
		st.warehouses[w.ID] = w
	}
	st.ledger = inventory.NewLedger(doc.Stock...)
	for i := len(doc.Transfers) - 1; i >= 0; i-- {
		st.transfers = append(st.transfers, doc.Transfers[i])
	}
	for _, a := range doc.Alerts {
		st.alerts[a.ID] = a
	}
	st.transferSeq = doc.TransferSeq
	for _, t := range st.transfers {
		if t.Seq > st.transferSeq {
			st.transferSeq = t.Seq
		}
	}
	return st, nil
}

// writeState reescribe el archivo completo de forma atómica (temporal + rename).
func writeState(path string, st *state) error {
	data, err := encodeState(st)
	if err != nil {
		return fmt.Errorf("codificar estado: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
