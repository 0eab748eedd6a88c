package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/orius/cartorio-api/internal/api/metrics"
	"github.com/orius/cartorio-api/internal/core/domain"
	"github.com/orius/cartorio-api/internal/core/ports"
	"github.com/orius/cartorio-api/pkg/logger"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher writes audit entries to a sink from a fixed set of workers.
// Entries are sharded by account id so the history of one account is written
// in order. Record never blocks: when a worker channel is full the entry is
// dropped and counted.
type Dispatcher struct {
	workers []chan domain.AuditEntry
	sink    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	return newDispatcher(numWorkers, channelBuffer, sink, log)
}

func newDispatcher(numWorkers, buffer int, sink ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		sink:    sink,
		log:     logger.Component(log, "audit_queue"),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, buffer)
	}
	return d
}

// Start launches the worker goroutines. ctx is passed to every sink write.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues entry on the worker responsible for its account.
func (d *Dispatcher) Record(entry domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(entry, "dispatcher closed")
		return
	}

	idx := d.shardIndex(entry.AccountID)
	select {
	case d.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(entry, "audit queue full")
	}
}

// Close stops accepting entries and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) drop(entry domain.AuditEntry, reason string) {
	metrics.AuditEntriesTotal.WithLabelValues("dropped").Inc()
	d.log.Warn().
		Str("action", entry.Action).
		Int64("account_id", entry.AccountID).
		Msg(reason)
}

// shardIndex maps an account id deterministically to a worker index.
func (d *Dispatcher) shardIndex(accountID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(accountID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for entry := range ch {
		depth.Set(float64(len(ch)))

		start := time.Now()
		err := d.sink.Insert(ctx, entry)
		metrics.AuditWriteDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.AuditEntriesTotal.WithLabelValues("failed").Inc()
			d.log.Error().Err(err).
				Str("action", entry.Action).
				Int64("account_id", entry.AccountID).
				Int("worker_id", id).
				Msg("audit write failed")
			continue
		}
		metrics.AuditEntriesTotal.WithLabelValues("written").Inc()
	}
}
