package worker

import (
	"context"
	"time"

	"github.com/easyui/easyui-backend/internal/logger"
)

type PaymentService interface {
	ExpirePendingPayments(ctx context.Context, ttl time.Duration) error
}

// PaymentExpirer is worker cancelling orders whose payment attempt stayed
// pending longer than ttl
type PaymentExpirer struct {
	svc      PaymentService
	interval time.Duration
	ttl      time.Duration
}

// NewPaymentExpirer creates new payment expirer
func NewPaymentExpirer(svc PaymentService, interval, ttl time.Duration) *PaymentExpirer {
	return &PaymentExpirer{
		svc:      svc,
		interval: interval,
		ttl:      ttl,
	}
}

// Run drives the expirer until ctx is done
func (pe *PaymentExpirer) Run(ctx context.Context) {
	ticker := time.NewTicker(pe.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("payment expirer is done")
			return
		case <-ticker.C:
			if err := pe.svc.ExpirePendingPayments(ctx, pe.ttl); err != nil {
				logger.Log.Error("error expiring pending payments")
			}
		}
	}
}
