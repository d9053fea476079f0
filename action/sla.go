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

var SLAMachine = NewMachine[entity.SLAStatus]("sla").
	Stay(Escalate, entity.SLAOnTrack, entity.SLAAtRisk, entity.SLABreached).
	Allow(Resolve, entity.SLAResolved, entity.SLAAtRisk, entity.SLABreached)

func SLARules() map[Name]Rule[entity.SLARecord] {
	return map[Name]Rule[entity.SLARecord]{
		Escalate: {
			Apply: func(rec entity.SLARecord, _ Params, _ time.Time) (entity.SLARecord, error) {
				if _, err := SLAMachine.Next(Escalate, rec.Status); err != nil {
					return rec, err
				}
				if rec.Escalated {
					return rec, fmt.Errorf("SLA %s is already escalated: %w", rec.Number, ErrInvalidTransition)
				}
				rec.Escalated = true
				return rec, nil
			},
			Done: func(rec entity.SLARecord) string {
				return fmt.Sprintf("SLA %s escalated", rec.Number)
			},
		},
		Resolve: {
			Check: func(_ context.Context, p Params) (Params, error) {
				return p, requireText("note", p.Note, "resolution note is required")
			},
			Apply: func(rec entity.SLARecord, p Params, _ time.Time) (entity.SLARecord, error) {
				next, err := SLAMachine.Next(Resolve, rec.Status)
				if err != nil {
					return rec, err
				}
				rec.Status = next
				rec.ResolutionNote = strings.TrimSpace(p.Note)
				return rec, nil
			},
			Done: func(rec entity.SLARecord) string {
				return fmt.Sprintf("SLA %s resolved", rec.Number)
			},
		},
	}
}

func NewSLADispatcher(store dbt.EntityStore[entity.SLARecord], events mq.EventQueue) *Dispatcher[entity.SLARecord] {
	return NewDispatcher(entity.SLASchema.Entity, store, SLARules(), func(s entity.SLARecord) []Name {
		names := SLAMachine.Actions(s.Status)
		if !s.Escalated {
			return names
		}
		kept := names[:0]
		for _, n := range names {
			if n != Escalate {
				kept = append(kept, n)
			}
		}
		return kept
	}, events)
}
