package web

import (
	"errors"
	"net/http"

	"logidash/action"
	dbt "logidash/db/db"
	"logidash/query"
)

var (
	errBadBody       = errors.New("invalid request body")
	errBadParam      = errors.New("invalid query parameter")
	errUnknownEntity = errors.New("unknown entity")
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, action.ErrValidation), errors.Is(err, action.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dbt.ErrNotFound), errors.Is(err, errUnknownEntity):
		return http.StatusNotFound
	case errors.Is(err, dbt.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, query.ErrUnknownField),
		errors.Is(err, action.ErrUnknownAction),
		errors.Is(err, action.ErrNoSelection),
		errors.Is(err, dbt.ErrEmptyID),
		errors.Is(err, errBadBody),
		errors.Is(err, errBadParam):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
