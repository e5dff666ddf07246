//go:build unit

package idgen_test

import (
	"context"
	"sync"
	"testing"

	"slot-reservation/internal/pkg/idgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	ctx := context.Background()

	t.Run("namespaces are independent", func(t *testing.T) {
		seq := idgen.NewSequence()

		p1, err := seq.Next(ctx, idgen.NamespaceParking)
		require.NoError(t, err)
		e1, err := seq.Next(ctx, idgen.NamespaceEV)
		require.NoError(t, err)
		p2, err := seq.Next(ctx, idgen.NamespaceParking)
		require.NoError(t, err)

		assert.Equal(t, int64(1), p1)
		assert.Equal(t, int64(1), e1)
		assert.Equal(t, int64(2), p2)
	})

	t.Run("observe skips issued ids", func(t *testing.T) {
		seq := idgen.NewSequence()
		seq.Observe(idgen.NamespaceReservation, 41)
		seq.Observe(idgen.NamespaceReservation, 7)

		id, err := seq.Next(ctx, idgen.NamespaceReservation)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("concurrent callers never share an id", func(t *testing.T) {
		seq := idgen.NewSequence()
		const n = 200

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			seen = make(map[int64]struct{}, n)
		)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, _ := seq.Next(ctx, idgen.NamespaceReservation)
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, n)
	})
}
