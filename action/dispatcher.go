package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	dbt "logidash/db/db"
	"logidash/entity"
	"logidash/libs/diff"
	"logidash/libs/reqid"
	"logidash/mq/mq"
)

// Rule is one named action of an entity type.
// Check runs before the store is touched and may resolve extra inputs into the params.
// Apply builds the replacement record; Remove rules delete the record instead.
type Rule[T entity.Record] struct {
	Check  func(ctx context.Context, p Params) (Params, error)
	Apply  func(rec T, p Params, now time.Time) (T, error)
	Remove bool
	Done   func(rec T) string
}

// Dispatcher maps action names to store mutations for one entity type.
type Dispatcher[T entity.Record] struct {
	entity    string
	store     dbt.EntityStore[T]
	rules     map[Name]Rule[T]
	available func(rec T) []Name
	events    mq.EventQueue
	Now       func() time.Time
}

// NewDispatcher wires rules to store. events may be nil.
func NewDispatcher[T entity.Record](entityName string, store dbt.EntityStore[T], rules map[Name]Rule[T], available func(rec T) []Name, events mq.EventQueue) *Dispatcher[T] {
	if rules == nil {
		rules = map[Name]Rule[T]{}
	}
	return &Dispatcher[T]{
		entity:    entityName,
		store:     store,
		rules:     rules,
		available: available,
		events:    events,
		Now:       time.Now,
	}
}

func (d *Dispatcher[T]) Entity() string { return d.entity }

func (d *Dispatcher[T]) Store() dbt.EntityStore[T] { return d.store }

// Actions lists what can be dispatched against rec in its current state.
func (d *Dispatcher[T]) Actions(rec T) []Name {
	if d.available == nil {
		return nil
	}
	return d.available(rec)
}

// Dispatch runs action name against the record id. An accepted action performs
// exactly one store mutation; a refused one performs none. Either way exactly one
// notification is returned.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, name Name, id string, p Params) ([]T, Notification, error) {
	coll, note, err := d.dispatch(ctx, name, id, p)
	if err != nil {
		reqid.LogEvent(ctx, d.entity, string(name), fmt.Sprintf("id=%s refused: %v", id, err))
		return nil, failure(err), err
	}
	reqid.LogEvent(ctx, d.entity, string(name), fmt.Sprintf("id=%s ok", id))
	return coll, note, nil
}

func (d *Dispatcher[T]) dispatch(ctx context.Context, name Name, id string, p Params) ([]T, Notification, error) {
	rule, ok := d.rules[name]
	if !ok {
		return nil, Notification{}, fmt.Errorf("%s %s: %w", d.entity, name, ErrUnknownAction)
	}
	if strings.TrimSpace(id) == "" {
		return nil, Notification{}, ErrNoSelection
	}

	var err error
	if rule.Check != nil {
		if p, err = rule.Check(ctx, p); err != nil {
			return nil, Notification{}, err
		}
	}

	if rule.Remove {
		old, err := d.store.Get(ctx, id)
		if err != nil {
			return nil, Notification{}, err
		}
		coll, err := d.store.Remove(ctx, id)
		if err != nil {
			return nil, Notification{}, err
		}
		note := success(rule.Done(old))
		d.publish(ctx, name, id, mq.ActionDelete, note.Message, nil)
		return coll, note, nil
	}

	now := d.Now()
	var before, after T
	coll, err := d.store.Replace(ctx, id, func(old T) (T, error) {
		updated, err := rule.Apply(old, p, now)
		if err != nil {
			return old, err
		}
		before, after = old, updated
		return updated, nil
	})
	if err != nil {
		return nil, Notification{}, err
	}
	note := success(rule.Done(after))
	d.publish(ctx, name, id, mq.ActionUpdate, note.Message, changes(before, after))
	return coll, note, nil
}

// Create appends rec; the caller assigns its id.
func (d *Dispatcher[T]) Create(ctx context.Context, rec T) ([]T, Notification, error) {
	coll, err := d.store.Append(ctx, rec)
	if err != nil {
		reqid.LogEvent(ctx, d.entity, "create", fmt.Sprintf("id=%s refused: %v", rec.GetID(), err))
		return nil, failure(err), err
	}
	note := success(fmt.Sprintf("%s %s created", d.entity, rec.GetID()))
	reqid.LogEvent(ctx, d.entity, "create", fmt.Sprintf("id=%s ok", rec.GetID()))
	d.publish(ctx, "create", rec.GetID(), mq.ActionCreate, note.Message, nil)
	return coll, note, nil
}

// publish never undoes a mutation; failures are only logged.
func (d *Dispatcher[T]) publish(ctx context.Context, name Name, id string, act mq.Action, msg string, cl []mq.Change) {
	if d.events == nil {
		return
	}
	ev := mq.Event{
		ID:       uuid.New(),
		Entity:   d.entity,
		RecordID: id,
		Action:   act,
		Name:     string(name),
		Message:  msg,
		Changes:  cl,
		At:       d.Now().UTC(),
	}
	if err := d.events.Publish(ev); err != nil {
		reqid.LogEvent(ctx, d.entity, string(name), fmt.Sprintf("id=%s publish failed: %v", id, err))
	}
}

func changes(before, after interface{}) []mq.Change {
	cl, err := diff.Changes(before, after)
	if err != nil {
		return nil
	}
	out := make([]mq.Change, 0, len(cl))
	for _, c := range cl {
		out = append(out, mq.Change{Type: c.Type, Path: c.Path, From: c.From, To: c.To})
	}
	return out
}

func requireText(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Msg: msg}
	}
	return nil
}
