package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/mq/mq"
)

var PayableMachine = NewMachine[entity.PayableStatus]("payable").
	Allow(Approve, entity.PayableApproved, entity.PayablePending).
	Allow(Reject, entity.PayableRejected, entity.PayablePending).
	Allow(Pay, entity.PayablePaid, entity.PayableApproved).
	Allow(Hold, entity.PayableOnHold, entity.PayablePending, entity.PayableApproved).
	Allow(Release, entity.PayablePending, entity.PayableOnHold)

func payableStep(name Name, verb string, edit func(p *entity.DriverPayable, params Params, now time.Time)) Rule[entity.DriverPayable] {
	return Rule[entity.DriverPayable]{
		Apply: func(rec entity.DriverPayable, params Params, now time.Time) (entity.DriverPayable, error) {
			next, err := PayableMachine.Next(name, rec.Status)
			if err != nil {
				return rec, err
			}
			rec.Status = next
			if edit != nil {
				edit(&rec, params, now)
			}
			return rec, nil
		},
		Done: func(rec entity.DriverPayable) string {
			return fmt.Sprintf("Payable %s %s", rec.Number, verb)
		},
	}
}

// PayableRules covers the payable approval flow.
func PayableRules() map[Name]Rule[entity.DriverPayable] {
	reject := payableStep(Reject, "rejected", func(p *entity.DriverPayable, params Params, _ time.Time) {
		p.RejectionReason = strings.TrimSpace(params.Reason)
	})
	reject.Check = func(_ context.Context, p Params) (Params, error) {
		return p, requireText("reason", p.Reason, "rejection reason is required")
	}

	return map[Name]Rule[entity.DriverPayable]{
		Approve: payableStep(Approve, "approved", nil),
		Reject:  reject,
		Pay: payableStep(Pay, "paid", func(p *entity.DriverPayable, params Params, now time.Time) {
			paidAt := now
			p.PaidAt = &paidAt
			p.PaymentReference = strings.TrimSpace(params.Reference)
		}),
		Hold: payableStep(Hold, "put on hold", nil),
		Release: payableStep(Release, "released", func(p *entity.DriverPayable, _ Params, _ time.Time) {
			p.RejectionReason = ""
		}),
	}
}

func NewPayableDispatcher(store dbt.EntityStore[entity.DriverPayable], events mq.EventQueue) *Dispatcher[entity.DriverPayable] {
	return NewDispatcher(entity.PayableSchema.Entity, store, PayableRules(), func(p entity.DriverPayable) []Name {
		return PayableMachine.Actions(p.Status)
	}, events)
}
