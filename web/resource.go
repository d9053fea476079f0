package web

import (
	"context"
	"encoding/json"
	"fmt"

	"logidash/action"
	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/query"
)

// Resource is the entity-agnostic view of one dispatcher that the handlers route to.
type Resource interface {
	Entity() string
	List(ctx context.Context, req query.Request) (any, error)
	Get(ctx context.Context, id string) (Detail, error)
	Create(ctx context.Context, body []byte) (any, action.Notification, error)
	Dispatch(ctx context.Context, id string, name action.Name, p action.Params) (any, action.Notification, error)
}

// Detail is a record together with the actions its current state allows.
type Detail struct {
	Record  any           `json:"record"`
	Actions []action.Name `json:"actions"`
}

type resource[T entity.Record] struct {
	schema     query.Schema[T]
	dispatcher *action.Dispatcher[T]
}

func newResource[T entity.Record](schema query.Schema[T], dispatcher *action.Dispatcher[T]) Resource {
	return &resource[T]{schema: schema, dispatcher: dispatcher}
}

// Registry maps the :entity path segment to its resource.
type Registry map[string]Resource

func NewRegistry(set *action.Set) Registry {
	reg := Registry{}
	for _, r := range []Resource{
		newResource(entity.InquirySchema, set.Inquiries),
		newResource(entity.DriverSchema, set.Drivers),
		newResource(entity.TripSchema, set.Trips),
		newResource(entity.PayableSchema, set.Payables),
		newResource(entity.SLASchema, set.SLA),
		newResource(entity.UserSchema, set.Users),
	} {
		reg[r.Entity()] = r
	}
	return reg
}

func (r *resource[T]) Entity() string { return r.schema.Entity }

func (r *resource[T]) List(ctx context.Context, req query.Request) (any, error) {
	items, err := r.dispatcher.Store().Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return query.Run(items, r.schema, req)
}

func (r *resource[T]) Get(ctx context.Context, id string) (Detail, error) {
	rec, err := r.dispatcher.Store().Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	actions := r.dispatcher.Actions(rec)
	if actions == nil {
		actions = []action.Name{}
	}
	return Detail{Record: rec, Actions: actions}, nil
}

// Create decodes body into a record, assigning a fresh id when the body has none.
func (r *resource[T]) Create(ctx context.Context, body []byte) (any, action.Notification, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, action.Notification{}, fmt.Errorf("%w: %v", errBadBody, err)
	}
	if fields == nil {
		return nil, action.Notification{}, fmt.Errorf("%w: expected a JSON object", errBadBody)
	}
	if id, _ := fields["id"].(string); id == "" {
		fields["id"] = entity.NewID()
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, action.Notification{}, err
	}
	var rec T
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, action.Notification{}, fmt.Errorf("%w: %v", errBadBody, err)
	}

	_, note, err := r.dispatcher.Create(ctx, rec)
	if err != nil {
		return nil, note, err
	}
	return rec, note, nil
}

// Dispatch returns the record after the action; it is nil when the action removed it.
func (r *resource[T]) Dispatch(ctx context.Context, id string, name action.Name, p action.Params) (any, action.Notification, error) {
	coll, note, err := r.dispatcher.Dispatch(ctx, name, id, p)
	if err != nil {
		return nil, note, err
	}
	if idx := dbt.IndexOf(coll, id); idx >= 0 {
		return coll[idx], note, nil
	}
	return nil, note, nil
}
