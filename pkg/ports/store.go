package ports

import (
	"context"

	"github.com/aretw0/lumen/pkg/domain"
)

// DatasetStore persists batches of generated samples, keyed by dataset ID.
// Implementations must return domain.ErrDatasetNotFound for unknown IDs.
type DatasetStore interface {
	// Save persists a batch under the given dataset ID, replacing any
	// previous batch with the same ID.
	Save(ctx context.Context, id string, batch []domain.Sample) error

	// Load retrieves a previously saved batch.
	Load(ctx context.Context, id string) ([]domain.Sample, error)

	// List returns the IDs of all stored datasets.
	List(ctx context.Context) ([]string, error)

	// Delete removes a dataset. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
