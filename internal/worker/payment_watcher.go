package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/minseo-cho/gomall/internal/adapter/portone"
	domainErrors "github.com/minseo-cho/gomall/internal/domain/errors"
	"github.com/minseo-cho/gomall/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the watcher.
type PaymentFacade interface {
	PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	ReconcilePayment(ctx context.Context, uid string) (*model.Payment, model.ReconcileOutcome, error)
}

// PaymentWatcher polls open payment attempts and reconciles them against the
// gateway concurrently. It is the safety net behind the webhook: a lost
// callback cannot strand an order because the watcher will pick the attempt
// up on the next tick.
type PaymentWatcher struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentWatcher constructs the reconciliation worker pool.
func NewPaymentWatcher(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentWatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentWatcher{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Payment, batchSize*workers),
	}
}

// Start launches background processing.
func (w *PaymentWatcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.worker(runCtx)
	}

	w.wg.Add(1)
	go w.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (w *PaymentWatcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *PaymentWatcher) dispatch(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.jobs)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.fetchAndDispatch(ctx)
		}
	}
}

func (w *PaymentWatcher) fetchAndDispatch(ctx context.Context) {
	payments, err := w.facade.PaymentsForReconciliation(ctx, w.batchSize)
	if err != nil {
		w.logger.Error("fetch payments for reconciliation failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case w.jobs <- payment:
		}
	}
}

func (w *PaymentWatcher) worker(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-w.jobs:
			if !ok {
				return
			}
			w.handlePayment(ctx, payment)
		}
	}
}

func (w *PaymentWatcher) handlePayment(ctx context.Context, payment model.Payment) {
	_, outcome, err := w.facade.ReconcilePayment(ctx, payment.UID)
	if err != nil {
		var tooMany portone.TooManyRequestsError
		switch {
		case errors.As(err, &tooMany):
			w.logger.Warn("gateway rate limited", slog.Duration("retry_after", tooMany.RetryAfter))
			time.Sleep(tooMany.RetryAfter)
		case errors.Is(err, domainErrors.ErrNotFound):
			// The gateway has no record yet. Checkout may still be in
			// flight on the client, so the attempt stays ready.
		default:
			w.logger.Error("payment reconciliation failed",
				slog.String("uid", payment.UID), slog.String("error", err.Error()))
		}
		return
	}

	if outcome != model.OutcomePending {
		w.logger.Info("payment reconciled",
			slog.String("uid", payment.UID),
			slog.Int64("order_id", payment.OrderID),
			slog.String("outcome", string(outcome)),
		)
	}
}
