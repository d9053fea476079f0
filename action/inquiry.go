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

var InquiryMachine = NewMachine[entity.InquiryStatus]("inquiry").
	Allow(Review, entity.InquiryUnderReview, entity.InquiryNew).
	Allow(SendQuote, entity.InquiryQuoteSent, entity.InquiryNew, entity.InquiryUnderReview).
	Allow(ApproveQuote, entity.InquiryQuoteApproved, entity.InquiryQuoteSent).
	Allow(RejectQuote, entity.InquiryQuoteRejected, entity.InquiryQuoteSent).
	Allow(Expire, entity.InquiryExpired, entity.InquiryQuoteSent).
	Allow(Cancel, entity.InquiryCancelled, entity.InquiryNew, entity.InquiryUnderReview, entity.InquiryQuoteSent)

func inquiryStep(name Name, verb string, edit func(i *entity.Inquiry, params Params)) Rule[entity.Inquiry] {
	return Rule[entity.Inquiry]{
		Apply: func(rec entity.Inquiry, params Params, _ time.Time) (entity.Inquiry, error) {
			next, err := InquiryMachine.Next(name, rec.Status)
			if err != nil {
				return rec, err
			}
			rec.Status = next
			if edit != nil {
				edit(&rec, params)
			}
			return rec, nil
		},
		Done: func(rec entity.Inquiry) string {
			return fmt.Sprintf("Inquiry %s %s", rec.Number, verb)
		},
	}
}

func InquiryRules() map[Name]Rule[entity.Inquiry] {
	quote := inquiryStep(SendQuote, "quoted", func(i *entity.Inquiry, params Params) {
		i.QuotedAmount = params.Amount
	})
	quote.Check = func(_ context.Context, p Params) (Params, error) {
		if p.Amount <= 0 {
			return p, ValidationError{Field: "amount", Msg: "quote amount must be greater than zero"}
		}
		return p, nil
	}

	reject := inquiryStep(RejectQuote, "quote rejected", func(i *entity.Inquiry, params Params) {
		i.RejectionReason = strings.TrimSpace(params.Reason)
	})
	reject.Check = func(_ context.Context, p Params) (Params, error) {
		return p, requireText("reason", p.Reason, "rejection reason is required")
	}

	return map[Name]Rule[entity.Inquiry]{
		Review:       inquiryStep(Review, "under review", nil),
		SendQuote:    quote,
		ApproveQuote: inquiryStep(ApproveQuote, "quote approved", nil),
		RejectQuote:  reject,
		Expire:       inquiryStep(Expire, "expired", nil),
		Cancel:       inquiryStep(Cancel, "cancelled", nil),
	}
}

func NewInquiryDispatcher(store dbt.EntityStore[entity.Inquiry], events mq.EventQueue) *Dispatcher[entity.Inquiry] {
	return NewDispatcher(entity.InquirySchema.Entity, store, InquiryRules(), func(i entity.Inquiry) []Name {
		return InquiryMachine.Actions(i.Status)
	}, events)
}
