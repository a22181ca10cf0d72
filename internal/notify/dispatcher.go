package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const deliveryTimeout = 30 * time.Second

// Dispatcher fans shortlist notifications out to a Notifier from a bounded
// queue. Enqueue never blocks the request path: when the queue is full the
// notification is dropped and logged.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger

	queue chan Notification
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewDispatcher builds a Dispatcher with the given queue capacity and starts
// its delivery worker.
func NewDispatcher(notifier Notifier, queueCap int, log *zap.Logger) *Dispatcher {
	if queueCap <= 0 {
		queueCap = 1
	}
	d := &Dispatcher{
		notifier: notifier,
		log:      log,
		queue:    make(chan Notification, queueCap),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue submits a notification for asynchronous delivery. It returns
// immediately; a full or closed queue drops the notification.
func (d *Dispatcher) Enqueue(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.log.Warn("dispatcher closed, dropping shortlist email",
			zap.String("component", "notify"),
			zap.String("candidate_email", n.CandidateEmail),
			zap.String("job_title", n.JobTitle))
		return
	}
	select {
	case d.queue <- n:
	default:
		d.log.Warn("notification queue full, dropping shortlist email",
			zap.String("component", "notify"),
			zap.String("candidate_email", n.CandidateEmail),
			zap.String("job_title", n.JobTitle))
	}
}

// Close stops accepting notifications and waits for queued ones to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		if err := d.notifier.Notify(ctx, n); err != nil {
			d.log.Warn("shortlist notification failed",
				zap.String("component", "notify"),
				zap.String("candidate_email", n.CandidateEmail),
				zap.String("job_title", n.JobTitle),
				zap.Error(err))
		} else {
			d.log.Info("shortlist notification sent",
				zap.String("component", "notify"),
				zap.String("candidate_email", n.CandidateEmail),
				zap.String("job_title", n.JobTitle))
		}
		cancel()
	}
}
