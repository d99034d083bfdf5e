package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/encontro-app/encontro/internal/api/metrics"
	"github.com/encontro-app/encontro/internal/core/domain"
	"github.com/encontro-app/encontro/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes wallet ledger entries asynchronously through a fixed set
// of workers, sharded by user ID with consistent hashing. Entries for the same
// user always land on the same worker, so each user's history is persisted in
// the order it was produced.
type Dispatcher struct {
	workers []chan domain.LedgerEntry
	repo    ports.LedgerRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.LedgerRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LedgerEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LedgerEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an entry to the worker responsible for its user ID. The call
// is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Record(entry domain.LedgerEntry) {
	i := d.shardIndex(entry.UserID)
	d.workers[i] <- entry
	metrics.LedgerQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LedgerEntry) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &entry); err != nil {
				d.log.Error().Err(err).
					Str("user_id", entry.UserID).
					Str("entry_type", entry.Type).
					Int("worker_id", id).
					Msg("ledger write failed")
			}
			metrics.LedgerQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
		}
	}
}
