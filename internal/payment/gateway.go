// Package payment adapts the external payment processor to the narrow
// refund contract checkout needs.
package payment

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// ReconcileGateway records refund requests for manual processing by
// support. It stands in until the processor's refund API is wired; the
// log line is what the reconciliation runbook greps for.
type ReconcileGateway struct{}

func NewReconcileGateway() *ReconcileGateway {
	return &ReconcileGateway{}
}

func (g *ReconcileGateway) Refund(ctx context.Context, paymentRef string) error {
	log.WithField("payment_ref", paymentRef).Warn("payment: refund requested, queue for manual reconciliation")
	return nil
}
