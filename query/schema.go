package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Lookup returns the field declared under name.
func (s Schema[T]) Lookup(name string) (Field[T], error) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, nil
		}
	}
	return Field[T]{}, fmt.Errorf("%s has no field %q: %w", s.Entity, name, ErrUnknownField)
}

// FieldNames lists the declared field names in declaration order.
func (s Schema[T]) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// values renders the textual values of a field for one record.
func (f Field[T]) values(rec T) []string {
	switch {
	case f.Texts != nil:
		return f.Texts(rec)
	case f.Text != nil:
		return []string{f.Text(rec)}
	case f.Number != nil:
		return []string{strconv.FormatFloat(f.Number(rec), 'f', -1, 64)}
	case f.Time != nil:
		return []string{f.Time(rec).Format("2006-01-02")}
	}
	return nil
}

// Row renders every declared field of rec as text, in declaration order.
func (s Schema[T]) Row(rec T) []string {
	row := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		row = append(row, strings.Join(f.values(rec), " - "))
	}
	return row
}
