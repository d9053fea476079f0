package screen

import (
	"context"
	"fmt"
	"sort"

	"logidash/action"
	"logidash/entity"
	"logidash/query"
)

// State is everything one list screen remembers between renders.
type State struct {
	Search     string              `json:"search"`
	Filters    map[string][]string `json:"filters"`
	Sort       query.Sort          `json:"sort"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	SelectedID string              `json:"selectedId,omitempty"`
	ModalOpen  bool                `json:"modalOpen"`
}

// Screen is the controller of one list screen. It owns its State and changes it only
// through the named methods below. A Screen is not safe for concurrent use.
type Screen[T entity.Record] struct {
	schema     query.Schema[T]
	dispatcher *action.Dispatcher[T]
	state      State
}

func New[T entity.Record](schema query.Schema[T], dispatcher *action.Dispatcher[T], pageSize int) *Screen[T] {
	return &Screen[T]{
		schema:     schema,
		dispatcher: dispatcher,
		state: State{
			Filters:  map[string][]string{},
			Page:     1,
			PageSize: pageSize,
		},
	}
}

// State returns a copy of the current state.
func (s *Screen[T]) State() State {
	st := s.state
	st.Filters = make(map[string][]string, len(s.state.Filters))
	for k, v := range s.state.Filters {
		st.Filters[k] = append([]string(nil), v...)
	}
	return st
}

func (s *Screen[T]) Entity() string { return s.schema.Entity }

// SetSearch replaces the search text and returns to the first page.
func (s *Screen[T]) SetSearch(text string) {
	s.state.Search = text
	s.state.Page = 1
}

// SetFilter replaces the accepted values of field; no values removes the filter.
// The first page is shown afterwards.
func (s *Screen[T]) SetFilter(field string, values ...string) error {
	if _, err := s.schema.Lookup(field); err != nil {
		return err
	}
	if len(values) == 0 {
		delete(s.state.Filters, field)
	} else {
		s.state.Filters[field] = append([]string(nil), values...)
	}
	s.state.Page = 1
	return nil
}

func (s *Screen[T]) ClearFilters() {
	s.state.Filters = map[string][]string{}
	s.state.Page = 1
}

// SetSort orders by field; an empty field restores collection order.
func (s *Screen[T]) SetSort(field string, desc bool) error {
	if field != "" {
		if _, err := s.schema.Lookup(field); err != nil {
			return err
		}
	}
	s.state.Sort = query.Sort{Field: field, Desc: desc}
	return nil
}

// SetPage moves to page; View clamps it into range.
func (s *Screen[T]) SetPage(page int) {
	s.state.Page = page
}

// SetPageSize changes the page size; View clamps the current page.
func (s *Screen[T]) SetPageSize(size int) {
	s.state.PageSize = size
}

// Request renders the state as a pipeline request. Filters are ordered by field name.
func (s *Screen[T]) Request() query.Request {
	fields := make([]string, 0, len(s.state.Filters))
	for f := range s.state.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	conds := make([]query.Condition, 0, len(fields))
	for _, f := range fields {
		conds = append(conds, query.Condition{Field: f, Values: s.state.Filters[f]})
	}
	return query.Request{
		Search:   s.state.Search,
		Filters:  conds,
		Sort:     s.state.Sort,
		Page:     s.state.Page,
		PageSize: s.state.PageSize,
	}
}

// View runs the pipeline over the current collection. The page actually shown is
// written back, so a shrinking result never leaves the screen past its last page.
func (s *Screen[T]) View(ctx context.Context) (query.Result[T], error) {
	items, err := s.dispatcher.Store().Snapshot(ctx)
	if err != nil {
		return query.Result[T]{}, err
	}
	res, err := query.Run(items, s.schema, s.Request())
	if err != nil {
		return query.Result[T]{}, err
	}
	s.state.Page = res.Page
	s.state.PageSize = res.PageSize
	return res, nil
}

// Select makes id the single selected record and opens its modal.
func (s *Screen[T]) Select(ctx context.Context, id string) (T, error) {
	rec, err := s.dispatcher.Store().Get(ctx, id)
	if err != nil {
		return rec, err
	}
	s.state.SelectedID = id
	s.state.ModalOpen = true
	return rec, nil
}

// Selected returns the selected record.
func (s *Screen[T]) Selected(ctx context.Context) (T, error) {
	var zero T
	if s.state.SelectedID == "" {
		return zero, action.ErrNoSelection
	}
	return s.dispatcher.Store().Get(ctx, s.state.SelectedID)
}

// CloseModal closes the modal and clears the selection.
func (s *Screen[T]) CloseModal() {
	s.state.SelectedID = ""
	s.state.ModalOpen = false
}

// Actions lists what the selected record allows.
func (s *Screen[T]) Actions(ctx context.Context) ([]action.Name, error) {
	rec, err := s.Selected(ctx)
	if err != nil {
		return nil, err
	}
	return s.dispatcher.Actions(rec), nil
}

// Dispatch runs name against the selected record and closes the modal when it
// is accepted. A refused action keeps the modal open.
func (s *Screen[T]) Dispatch(ctx context.Context, name action.Name, params action.Params) (action.Notification, error) {
	if s.state.SelectedID == "" {
		err := fmt.Errorf("%s %s: %w", s.schema.Entity, name, action.ErrNoSelection)
		return action.Notification{Level: action.LevelError, Message: "select a record first"}, err
	}
	_, note, err := s.dispatcher.Dispatch(ctx, name, s.state.SelectedID, params)
	if err != nil {
		return note, err
	}
	s.CloseModal()
	return note, nil
}
