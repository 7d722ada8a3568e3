package sales_test

import (
	"context"
	"sort"
	"strings"

	"github.com/fieldmax/pos-api/internal/application/sales"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// memStore estado compartido de los fakes en memoria: productos, ledger,
// ventas y contadores bajo un mismo "esquema". Los repos entregan copias;
// solo Create/Update persisten.
type memStore struct {
	products map[string]*entity.Product
	entries  []*entity.StockEntry
	sales    map[string]*entity.Sale
	items    []*entity.SaleItem
	counters map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
		sales:    make(map[string]*entity.Sale),
		counters: make(map[string]int64),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	c.entries = make([]*entity.StockEntry, len(s.entries))
	for i, e := range s.entries {
		ce := *e
		c.entries[i] = &ce
	}
	for id, sl := range s.sales {
		cs := *sl
		c.sales[id] = &cs
	}
	c.items = make([]*entity.SaleItem, len(s.items))
	for i, it := range s.items {
		ci := *it
		c.items[i] = &ci
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.entries = from.entries
	s.sales = from.sales
	s.items = from.items
	s.counters = from.counters
}

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(product *entity.Product) error {
	for _, p := range r.s.products {
		if p.ProductCode == product.ProductCode ||
			(product.SKUValue != "" && p.SKUValue == product.SKUValue) ||
			(product.Barcode != "" && p.Barcode == product.Barcode) {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	all := r.sorted(func(p *entity.Product) bool { return p.IsActive })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func matchKey(p *entity.Product, key string) bool {
	return p.ProductCode == key || (p.SKUValue != "" && p.SKUValue == key) || (p.Barcode != "" && p.Barcode == key)
}

func (r *fakeProductRepo) FindByKey(key string) ([]*entity.Product, error) {
	return r.sorted(func(p *entity.Product) bool {
		return p.IsActive && matchKey(p, key)
	}), nil
}

func (r *fakeProductRepo) FindByKeyForUpdate(key string) ([]*entity.Product, error) {
	return r.sorted(func(p *entity.Product) bool {
		return p.IsActive && p.Status != entity.StatusSold && matchKey(p, key)
	}), nil
}

func (r *fakeProductRepo) AnySoldByKey(key string) (bool, error) {
	for _, p := range r.s.products {
		if p.IsActive && p.Status == entity.StatusSold && matchKey(p, key) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) MaxProductCode(prefix string) (string, error) {
	max := ""
	for _, p := range r.s.products {
		if strings.HasPrefix(p.ProductCode, prefix) && p.ProductCode > max {
			max = p.ProductCode
		}
	}
	return max, nil
}

func (r *fakeProductRepo) CountByCategory(categoryID string) (int, error) {
	n := 0
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) ExistsBarcode(barcode string) (bool, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) sorted(keep func(*entity.Product) bool) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// ── StockEntryRepository ─────────────────────────────────────────────────────

type fakeEntryRepo struct{ s *memStore }

var _ repository.StockEntryRepository = (*fakeEntryRepo)(nil)

func (r *fakeEntryRepo) Create(entry *entity.StockEntry) error {
	cp := *entry
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) ExistsForProduct(productID string) (bool, error) {
	for _, e := range r.s.entries {
		if e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEntryRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].ProductID == productID {
			ce := *r.s.entries[i]
			out = append(out, &ce)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeEntryRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, e := range r.s.entries {
		if e.ProductID == productID {
			sum += e.Quantity
		}
	}
	return sum, nil
}

// ── SaleRepository ───────────────────────────────────────────────────────────

type fakeSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	if _, ok := r.s.sales[sale.SaleID]; ok {
		return domain.ErrDuplicate
	}
	cp := *sale
	r.s.sales[sale.SaleID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(saleID string) (*entity.Sale, error) {
	sl, ok := r.s.sales[saleID]
	if !ok {
		return nil, nil
	}
	cp := *sl
	return &cp, nil
}

func (r *fakeSaleRepo) GetForUpdate(saleID string) (*entity.Sale, error) {
	return r.GetByID(saleID)
}

func (r *fakeSaleRepo) Update(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.SaleID] = &cp
	return nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sl := range r.s.sales {
		cp := *sl
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items = append(r.s.items, &cp)
	return nil
}

func (r *fakeSaleRepo) ListItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			ci := *it
			out = append(out, &ci)
		}
	}
	return out, nil
}

// ── SequenceRepository ───────────────────────────────────────────────────────

type fakeSeqRepo struct{ s *memStore }

var _ repository.SequenceRepository = (*fakeSeqRepo)(nil)

func (r *fakeSeqRepo) EnsureScope(scopeKey string) error {
	if _, ok := r.s.counters[scopeKey]; !ok {
		r.s.counters[scopeKey] = 0
	}
	return nil
}

func (r *fakeSeqRepo) GetForUpdate(scopeKey string) (*entity.SequenceCounter, error) {
	v, ok := r.s.counters[scopeKey]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.SequenceCounter{ScopeKey: scopeKey, Counter: v}, nil
}

func (r *fakeSeqRepo) Update(counter *entity.SequenceCounter) error {
	r.s.counters[counter.ScopeKey] = counter.Counter
	return nil
}

// ── SaleTxRunner ─────────────────────────────────────────────────────────────

// fakeSaleTxRunner modela la atomicidad con snapshot/restore: si fn falla,
// el store completo (ventas, ítems, asientos, productos, contadores) vuelve
// al estado previo.
type fakeSaleTxRunner struct{ s *memStore }

var _ sales.SaleTxRunner = (*fakeSaleTxRunner)(nil)

func (r *fakeSaleTxRunner) RunSale(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	saleRepo repository.SaleRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	saved := r.s.clone()
	err := fn(&fakeProductRepo{s: r.s}, &fakeEntryRepo{s: r.s}, &fakeSaleRepo{s: r.s}, &fakeSeqRepo{s: r.s})
	if err != nil {
		r.s.restore(saved)
		return err
	}
	return nil
}
