package inventory_test

import (
	"context"
	"sort"
	"strings"

	"github.com/fieldmax/pos-api/internal/application/inventory"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
	"github.com/fieldmax/pos-api/internal/domain/repository"
)

// memStore estado compartido de los fakes en memoria. Los repos operan sobre
// copias, igual que filas leídas de la DB: una mutación solo persiste vía
// Update/Create.
type memStore struct {
	products map[string]*entity.Product
	entries  []*entity.StockEntry
	counters map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]*entity.Product),
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
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.entries = from.entries
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

// sorted devuelve copias filtradas en orden created_at ascendente.
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

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner modela la atomicidad con snapshot/restore: si fn falla, el
// store vuelve exactamente al estado previo.
type fakeTxRunner struct{ s *memStore }

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	entryRepo repository.StockEntryRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	saved := r.s.clone()
	err := fn(&fakeProductRepo{s: r.s}, &fakeEntryRepo{s: r.s}, &fakeSeqRepo{s: r.s})
	if err != nil {
		r.s.restore(saved)
		return err
	}
	return nil
}

// ── CategoryRepository ───────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo(cats ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
	for _, c := range cats {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetByCode(code string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCategoryRepo) HasProducts(string) (bool, error) { return false, nil }
