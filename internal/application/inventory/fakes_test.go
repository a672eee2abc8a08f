package inventory_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastro/dulceria-api/internal/domain/entity"
	"github.com/jcastro/dulceria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia. El fakeTxRunner simula
// commit/rollback con snapshot-restore para poder probar que un drenaje
// fallido no deja efectos parciales.
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ---- stock ----

type fakeStockRepo struct {
	mu      sync.Mutex
	records map[string]*entity.StockRecord
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: map[string]*entity.StockRecord{}}
}

func cloneStock(r *entity.StockRecord) *entity.StockRecord {
	c := *r
	return &c
}

func (f *fakeStockRepo) Get(productID string) (*entity.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[productID]
	if !ok {
		return nil, nil
	}
	return cloneStock(r), nil
}

func (f *fakeStockRepo) GetForUpdate(productID string) (*entity.StockRecord, error) {
	return f.Get(productID)
}

func (f *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[record.ProductID] = cloneStock(record)
	return nil
}

func (f *fakeStockRepo) List(limit, offset int) ([]*entity.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.StockRecord, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, cloneStock(r))
	}
	return out, nil
}

func (f *fakeStockRepo) snapshot() map[string]*entity.StockRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]*entity.StockRecord, len(f.records))
	for k, v := range f.records {
		snap[k] = cloneStock(v)
	}
	return snap
}

func (f *fakeStockRepo) restore(snap map[string]*entity.StockRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = snap
}

// seed inserta un registro directamente, saltándose el camino de aplicación.
func (f *fakeStockRepo) seed(productID, qty string) {
	f.records[productID] = &entity.StockRecord{
		ProductID:      productID,
		Quantity:       dec(qty),
		Unit:           "unidades",
		AlertThreshold: entity.DefaultAlertThreshold,
		LastUpdatedAt:  time.Now(),
	}
}

// ---- movimientos ----

type fakeMovementRepo struct {
	mu        sync.Mutex
	movements []*entity.Movement
	seq       int64
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c := *m
	c.Seq = f.seq
	f.movements = append(f.movements, &c)
	return nil
}

func (f *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Movement
	for _, m := range f.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.Timestamp.Before(*from) {
			continue
		}
		if to != nil && m.Timestamp.After(*to) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMovementRepo) CountByProduct(productID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.movements {
		if m.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMovementRepo) all() []*entity.Movement {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Movement, len(f.movements))
	copy(out, f.movements)
	return out
}

// ---- productos ----

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[productID]; ok {
		p.UnitCost = cost
	}
	return nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeProductRepo) seed(id, name, ptype string, cost string) {
	f.products[id] = &entity.Product{ID: id, Name: name, Type: ptype, UnitCost: dec(cost)}
}

// ---- BOM ----

type fakeBOMRepo struct {
	mu    sync.Mutex
	lines []*entity.BOMLine
}

func newFakeBOMRepo() *fakeBOMRepo { return &fakeBOMRepo{} }

func (f *fakeBOMRepo) Create(line *entity.BOMLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *line
	f.lines = append(f.lines, &c)
	return nil
}

func (f *fakeBOMRepo) ListByFinishedProduct(finishedProductID string) ([]*entity.BOMLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.BOMLine
	for _, l := range f.lines {
		if l.FinishedProductID == finishedProductID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- consumo ----

type fakeConsumptionRepo struct {
	mu      sync.Mutex
	records []*entity.ConsumptionRecord
}

func newFakeConsumptionRepo() *fakeConsumptionRepo { return &fakeConsumptionRepo{} }

func (f *fakeConsumptionRepo) Create(rec *entity.ConsumptionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *rec
	f.records = append(f.records, &c)
	return nil
}

func (f *fakeConsumptionRepo) ListBySale(saleID string) ([]*entity.ConsumptionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ConsumptionRecord
	for _, r := range f.records {
		if r.SaleID == saleID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeConsumptionRepo) ListByRawMaterial(rawMaterialID string, limit, offset int) ([]*entity.ConsumptionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.ConsumptionRecord
	for _, r := range f.records {
		if r.RawMaterialID == rawMaterialID {
			c := *r
			out = append(out, &c)
		}
	}
	return out, nil
}

// ---- tx runner ----

var errCommitSimulado = errors.New("commit simulado fallido")

// fakeTxRunner ejecuta fn contra los fakes y simula atomicidad: ante error de
// fn o commit forzado a fallar, restaura el snapshot previo (rollback).
type fakeTxRunner struct {
	stock *fakeStockRepo
	mov   *fakeMovementRepo
	prod  *fakeProductRepo

	failCommits int // cuántos commits seguidos deben fallar
	// onRun se invoca dentro de la "transacción" (para simular registros
	// concurrentes durante un drenaje).
	onRun func()
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	stockSnap := f.stock.snapshot()
	movSnap := f.mov.all()
	movSeq := f.mov.seq
	prodSnap := make(map[string]*entity.Product, len(f.prod.products))
	for k, v := range f.prod.products {
		c := *v
		prodSnap[k] = &c
	}

	if f.onRun != nil {
		f.onRun()
	}

	err := fn(f.stock, f.mov, f.prod)
	if err == nil && f.failCommits > 0 {
		f.failCommits--
		err = errCommitSimulado
	}
	if err != nil {
		f.stock.restore(stockSnap)
		f.mov.mu.Lock()
		f.mov.movements = movSnap
		f.mov.seq = movSeq
		f.mov.mu.Unlock()
		f.prod.mu.Lock()
		f.prod.products = prodSnap
		f.prod.mu.Unlock()
		return err
	}
	return nil
}
