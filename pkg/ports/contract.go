package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lumen/pkg/domain"
)

// RunDatasetStoreContract runs a suite of tests to verify that a
// DatasetStore implementation adheres to the defined interface contract.
func RunDatasetStoreContract(t *testing.T, store DatasetStore) {
	ctx := context.Background()
	datasetID := "contract-test-dataset-" + time.Now().Format("20060102150405")

	batch := func() []domain.Sample {
		frame := domain.NewFrame(2, 2, 1)
		frame.Data[0] = 1.5
		frame.Stamp(domain.Snapshot{
			Feature: "point",
			Values:  map[string]any{"position": []float64{1, 2}},
		})
		return []domain.Sample{{ID: "sample-1", Frames: []*domain.Frame{frame}, Label: []float64{1, 2}}}
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, datasetID, batch())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, datasetID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded, 1)
		assert.Equal(t, "sample-1", loaded[0].ID)
		require.Len(t, loaded[0].Frames, 1)
		assert.Equal(t, []int{2, 2, 1}, loaded[0].Frames[0].Shape)
		assert.InDelta(t, 1.5, loaded[0].Frames[0].Data[0], 1e-9)
		require.Len(t, loaded[0].Frames[0].Provenance, 1)
		assert.Equal(t, "point", loaded[0].Frames[0].Provenance[0].Feature)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+datasetID)
		assert.ErrorIs(t, err, domain.ErrDatasetNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, datasetID, batch()))

		require.NoError(t, store.Delete(ctx, datasetID), "Delete should not return error")

		_, err := store.Load(ctx, datasetID)
		assert.ErrorIs(t, err, domain.ErrDatasetNotFound, "Load after Delete should return ErrDatasetNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := datasetID + "-1"
		id2 := datasetID + "-2"
		_ = store.Save(ctx, id1, batch())
		_ = store.Save(ctx, id2, batch())

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
