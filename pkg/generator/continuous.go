package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/lumen/pkg/domain"
	"github.com/aretw0/lumen/pkg/ports"
)

// Continuous pre-generates samples in a background goroutine, keeping a
// bounded buffer full so training code never waits on resolution. With a
// store attached, completed batches are written through for other consumers.
type Continuous struct {
	gen       *Generator
	store     ports.DatasetStore
	batchSize int
	buffer    int
	logger    *slog.Logger

	samples chan *domain.Sample
	done    chan struct{}
	err     error
}

// ContinuousOption configures a Continuous generator.
type ContinuousOption func(*Continuous)

// WithBuffer sets the number of samples buffered ahead of the consumer
// (default 16).
func WithBuffer(n int) ContinuousOption {
	return func(c *Continuous) {
		c.buffer = n
	}
}

// WithStore enables write-through of completed batches to a dataset store.
func WithStore(store ports.DatasetStore, batchSize int) ContinuousOption {
	return func(c *Continuous) {
		c.store = store
		c.batchSize = batchSize
	}
}

// WithContinuousLogger sets a structured logger.
func WithContinuousLogger(logger *slog.Logger) ContinuousOption {
	return func(c *Continuous) {
		c.logger = logger
	}
}

// NewContinuous wraps a generator for background pre-generation.
func NewContinuous(gen *Generator, opts ...ContinuousOption) *Continuous {
	c := &Continuous{
		gen:    gen,
		buffer: 16,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start launches the generation loop. It runs until ctx is cancelled or a
// cycle fails; Err reports the cause after Samples closes.
func (c *Continuous) Start(ctx context.Context) {
	c.samples = make(chan *domain.Sample, c.buffer)
	c.done = make(chan struct{})

	go func() {
		defer close(c.samples)
		defer close(c.done)

		var pending []domain.Sample
		for {
			sample, err := c.gen.Next(ctx)
			if err != nil {
				if ctx.Err() == nil {
					c.err = err
					c.logger.Error("continuous generation stopped", "err", err)
				}
				c.flush(pending)
				return
			}

			select {
			case c.samples <- sample:
			case <-ctx.Done():
				c.flush(pending)
				return
			}

			if c.store != nil {
				pending = append(pending, *sample)
				if len(pending) >= c.batchSize {
					c.flush(pending)
					pending = nil
				}
			}
		}
	}()
}

// flush writes a partial or full batch through to the store.
func (c *Continuous) flush(batch []domain.Sample) {
	if c.store == nil || len(batch) == 0 {
		return
	}
	id := fmt.Sprintf("batch-%s", uuid.NewString())
	// Detached context: a cancelled run should still persist what it has.
	if err := c.store.Save(context.Background(), id, batch); err != nil {
		c.logger.Error("failed to persist batch", "dataset", id, "err", err)
		return
	}
	c.logger.Debug("batch persisted", "dataset", id, "samples", len(batch))
}

// Samples returns the channel of pre-generated samples. It closes when the
// loop stops.
func (c *Continuous) Samples() <-chan *domain.Sample {
	return c.samples
}

// Wait blocks until the generation loop has fully stopped.
func (c *Continuous) Wait() {
	<-c.done
}

// Err returns the failure that stopped the loop, if any. Cancellation is not
// an error.
func (c *Continuous) Err() error {
	return c.err
}
