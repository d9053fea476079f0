package action

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/mq/mq"
)

var TripMachine = NewMachine[entity.TripStatus]("trip").
	Allow(AssignDriver, entity.TripAssigned, entity.TripUnassigned).
	Allow(UnassignDriver, entity.TripUnassigned, entity.TripAssigned).
	Allow(Start, entity.TripInProgress, entity.TripAssigned).
	Allow(Complete, entity.TripCompleted, entity.TripInProgress).
	Allow(Cancel, entity.TripCancelled, entity.TripUnassigned, entity.TripAssigned)

// resolveDriver prefers the request-scoped loader and falls back to the store.
func resolveDriver(ctx context.Context, drivers dbt.EntityStore[entity.Driver], id string) (entity.Driver, error) {
	if loader, ok := dbt.DriverLoaderFrom(ctx); ok {
		return loader.Load(ctx, id)
	}
	return drivers.Get(ctx, id)
}

func tripStep(name Name, verb string, edit func(t *entity.Trip, params Params)) Rule[entity.Trip] {
	return Rule[entity.Trip]{
		Apply: func(rec entity.Trip, params Params, _ time.Time) (entity.Trip, error) {
			next, err := TripMachine.Next(name, rec.Status)
			if err != nil {
				return rec, err
			}
			rec.Status = next
			if edit != nil {
				edit(&rec, params)
			}
			return rec, nil
		},
		Done: func(rec entity.Trip) string {
			return fmt.Sprintf("Trip %s %s", rec.Number, verb)
		},
	}
}

// TripRules covers driver assignment and the trip lifecycle. Assignment copies the
// driver into the trip; later edits of the driver record do not reach the trip.
func TripRules(drivers dbt.EntityStore[entity.Driver]) map[Name]Rule[entity.Trip] {
	assign := tripStep(AssignDriver, "assigned", func(t *entity.Trip, params Params) {
		snapshot := *params.driver
		t.AssignedDriver = &snapshot
	})
	assign.Check = func(ctx context.Context, p Params) (Params, error) {
		id := strings.TrimSpace(p.DriverID)
		if id == "" {
			return p, ValidationError{Field: "driverId", Msg: "please select a driver"}
		}
		driver, err := resolveDriver(ctx, drivers, id)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return p, err
			}
			return p, ValidationError{Field: "driverId", Msg: fmt.Sprintf("driver %s not found", id)}
		}
		p.driver = &driver
		return p, nil
	}
	assign.Done = func(rec entity.Trip) string {
		return fmt.Sprintf("Trip %s assigned to %s", rec.Number, rec.DriverName())
	}

	return map[Name]Rule[entity.Trip]{
		AssignDriver: assign,
		UnassignDriver: tripStep(UnassignDriver, "unassigned", func(t *entity.Trip, _ Params) {
			t.AssignedDriver = nil
		}),
		Start:    tripStep(Start, "started", nil),
		Complete: tripStep(Complete, "completed", nil),
		Cancel:   tripStep(Cancel, "cancelled", nil),
	}
}

func NewTripDispatcher(store dbt.EntityStore[entity.Trip], drivers dbt.EntityStore[entity.Driver], events mq.EventQueue) *Dispatcher[entity.Trip] {
	return NewDispatcher(entity.TripSchema.Entity, store, TripRules(drivers), func(t entity.Trip) []Name {
		return TripMachine.Actions(t.Status)
	}, events)
}
