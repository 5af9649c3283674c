package sequence_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/sequence"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// fakeSequenceRepo contador en memoria con la misma semántica que el upsert
// atómico de PostgreSQL: incremento y lectura en un solo paso bajo lock.
type fakeSequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	paddings map[string]int
	failWith error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{
		counters: make(map[string]int64),
		paddings: make(map[string]int),
	}
}

func (f *fakeSequenceRepo) Next(_ context.Context, prefix string, defaultPadding int) (int64, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, 0, f.failWith
	}
	if _, ok := f.paddings[prefix]; !ok {
		f.paddings[prefix] = defaultPadding
	}
	f.counters[prefix]++
	return f.counters[prefix], f.paddings[prefix], nil
}

func (f *fakeSequenceRepo) List(_ context.Context) ([]*entity.SequenceCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefixes := make([]string, 0, len(f.counters))
	for p := range f.counters {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	out := make([]*entity.SequenceCounter, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, &entity.SequenceCounter{
			Prefix: p, LastValue: f.counters[p], Padding: f.paddings[p],
		})
	}
	return out, nil
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "SALE-000042", sequence.Format("SALE", 42, 6))
	assert.Equal(t, "PO-001", sequence.Format("PO", 1, 3))
	// el valor puede desbordar el ancho sin romper el formato
	assert.Equal(t, "SALE-1000000", sequence.Format("SALE", 1_000_000, 6))
	// padding inválido cae al default
	assert.Equal(t, "EXP-000007", sequence.Format("EXP", 7, 0))
}

func TestAllocate_PrimerNumero(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeSequenceRepo(), 6)

	ref, err := alloc.Allocate(context.Background(), "SALE")
	require.NoError(t, err)
	assert.Equal(t, "SALE-000001", ref)
}

func TestAllocate_NormalizaPrefijo(t *testing.T) {
	repo := newFakeSequenceRepo()
	alloc := sequence.NewAllocator(repo, 6)

	ref, err := alloc.Allocate(context.Background(), "  sale ")
	require.NoError(t, err)
	assert.Equal(t, "SALE-000001", ref)

	// minúsculas y mayúsculas comparten contador
	ref, err = alloc.Allocate(context.Background(), "SALE")
	require.NoError(t, err)
	assert.Equal(t, "SALE-000002", ref)
}

func TestAllocate_PrefijoVacio(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeSequenceRepo(), 6)

	_, err := alloc.Allocate(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocate_ContadoresIndependientesPorPrefijo(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeSequenceRepo(), 6)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ref, err := alloc.Allocate(ctx, "SALE")
		require.NoError(t, err)
		assert.Equal(t, sequence.Format("SALE", int64(i), 6), ref)
	}
	ref, err := alloc.Allocate(ctx, "PO")
	require.NoError(t, err)
	assert.Equal(t, "PO-000001", ref, "cada prefijo arranca en 1")
}

// Bajo concurrencia todos los números emitidos son distintos y sin huecos:
// n asignaciones producen exactamente los valores 1..n.
func TestAllocate_ConcurrenciaSinDuplicadosNiHuecos(t *testing.T) {
	const n = 200
	alloc := sequence.NewAllocator(newFakeSequenceRepo(), 6)

	refs := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref, err := alloc.Allocate(context.Background(), "SALE")
			assert.NoError(t, err)
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]bool, n)
	for ref := range refs {
		assert.False(t, seen[ref], "número duplicado: %s", ref)
		seen[ref] = true
	}
	require.Len(t, seen, n)
	for i := int64(1); i <= n; i++ {
		assert.True(t, seen[sequence.Format("SALE", i, 6)],
			"falta el consecutivo %d: la serie tiene huecos", i)
	}
}

func TestCounters_EstadoDeLasSeries(t *testing.T) {
	alloc := sequence.NewAllocator(newFakeSequenceRepo(), 6)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := alloc.Allocate(ctx, "SALE")
		require.NoError(t, err)
	}
	_, err := alloc.Allocate(ctx, "PO")
	require.NoError(t, err)

	counters, err := alloc.Counters(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 2)
	assert.Equal(t, "PO", counters[0].Prefix)
	assert.EqualValues(t, 1, counters[0].LastValue)
	assert.Equal(t, "SALE", counters[1].Prefix)
	assert.EqualValues(t, 4, counters[1].LastValue)
}

// Un fallo del store se reporta como ErrAllocationUnavailable conservando la
// causa encadenada.
func TestAllocate_FalloDelStore(t *testing.T) {
	repo := newFakeSequenceRepo()
	cause := errors.New("connection refused")
	repo.failWith = cause
	alloc := sequence.NewAllocator(repo, 6)

	_, err := alloc.Allocate(context.Background(), "SALE")
	assert.ErrorIs(t, err, domain.ErrAllocationUnavailable)
	assert.ErrorIs(t, err, cause)
}
