package sequence_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldmax/pos-api/internal/application/sequence"
	"github.com/fieldmax/pos-api/internal/domain"
	"github.com/fieldmax/pos-api/internal/domain/entity"
)

// lockedSeqRepo simula el contador con bloqueo de fila: GetForUpdate toma el
// lock del scope y Update lo libera, igual que un SELECT FOR UPDATE que se
// mantiene hasta el commit.
type lockedSeqRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	locks    map[string]*sync.Mutex
}

func newLockedSeqRepo() *lockedSeqRepo {
	return &lockedSeqRepo{
		counters: make(map[string]int64),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (r *lockedSeqRepo) EnsureScope(scopeKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.counters[scopeKey]; !ok {
		r.counters[scopeKey] = 0
		r.locks[scopeKey] = &sync.Mutex{}
	}
	return nil
}

func (r *lockedSeqRepo) GetForUpdate(scopeKey string) (*entity.SequenceCounter, error) {
	r.mu.Lock()
	lock, ok := r.locks[scopeKey]
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	lock.Lock() // retenido hasta Update (el "commit" del fake)
	r.mu.Lock()
	defer r.mu.Unlock()
	return &entity.SequenceCounter{ScopeKey: scopeKey, Counter: r.counters[scopeKey]}, nil
}

func (r *lockedSeqRepo) Update(counter *entity.SequenceCounter) error {
	r.mu.Lock()
	r.counters[counter.ScopeKey] = counter.Counter
	lock := r.locks[counter.ScopeKey]
	r.mu.Unlock()
	lock.Unlock()
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// NextInTx
// ──────────────────────────────────────────────────────────────────────────────

// K llamadas concurrentes al mismo scope deben producir K valores distintos y
// crecientes, sin duplicados.
func TestNextInTx_ConcurrenciaSinDuplicados(t *testing.T) {
	repo := newLockedSeqRepo()
	const k = 50

	results := make(chan int64, k)
	var wg sync.WaitGroup
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := sequence.NextInTx(repo, "receipt")
			require.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, k)
	for n := range results {
		assert.False(t, seen[n], "valor duplicado: %d", n)
		seen[n] = true
		assert.GreaterOrEqual(t, n, int64(1))
		assert.LessOrEqual(t, n, int64(k))
	}
	assert.Len(t, seen, k, "deben emitirse exactamente %d valores distintos", k)
}

// Scopes distintos llevan contadores independientes.
func TestNextInTx_ScopesIndependientes(t *testing.T) {
	repo := newLockedSeqRepo()

	n2025, err := sequence.NextInTx(repo, sequence.SaleScope(2025))
	require.NoError(t, err)
	n2026, err := sequence.NextInTx(repo, sequence.SaleScope(2026))
	require.NoError(t, err)
	nReceipt, err := sequence.NextInTx(repo, sequence.ReceiptScope)
	require.NoError(t, err)

	assert.Equal(t, int64(1), n2025, "cada scope arranca en 1")
	assert.Equal(t, int64(1), n2026)
	assert.Equal(t, int64(1), nReceipt)

	n2025b, err := sequence.NextInTx(repo, sequence.SaleScope(2025))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n2025b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formatos
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatSaleID(t *testing.T) {
	assert.Equal(t, "FSL2025001", sequence.FormatSaleID(2025, 1))
	assert.Equal(t, "FSL2025042", sequence.FormatSaleID(2025, 42))
	// Más de 3 dígitos: el número crece sin truncarse.
	assert.Equal(t, "FSL20251000", sequence.FormatSaleID(2025, 1000))
}

func TestFormatReceiptNumber(t *testing.T) {
	assert.Equal(t, "0001", sequence.FormatReceiptNumber(1))
	assert.Equal(t, "0137", sequence.FormatReceiptNumber(137))
	assert.Equal(t, "12345", sequence.FormatReceiptNumber(12345))
}

func TestYearOf(t *testing.T) {
	ts := time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2025, sequence.YearOf(ts))
}
