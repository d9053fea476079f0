package query

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"logidash/config"
)

// Run executes search, filter, sort and pagination over items and returns one page.
// The requested page is clamped into the valid range so a shrinking result set never
// renders an empty page while earlier pages still have content.
func Run[T any](items []T, schema Schema[T], req Request) (Result[T], error) {
	matched, err := Search(items, schema, req.Search)
	if err != nil {
		return Result[T]{}, err
	}
	matched, err = Filter(matched, schema, req.Filters)
	if err != nil {
		return Result[T]{}, err
	}
	matched, err = SortBy(matched, schema, req.Sort)
	if err != nil {
		return Result[T]{}, err
	}

	pageSize := normalizePageSize(req.PageSize)
	total := len(matched)
	totalPages := TotalPages(total, pageSize)
	page := ClampPage(req.Page, totalPages)

	return Result[T]{
		Items:      Paginate(matched, page, pageSize),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Search keeps the records where any searchable field contains text, ignoring case.
// Blank text matches everything.
func Search[T any](items []T, schema Schema[T], text string) ([]T, error) {
	fields := make([]Field[T], 0, len(schema.Searchable))
	for _, name := range schema.Searchable {
		f, err := schema.Lookup(name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(text))
	if needle == "" {
		return append([]T(nil), items...), nil
	}

	result := make([]T, 0, len(items))
	for _, rec := range items {
		if anyFieldContains(fold, fields, rec, needle) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func anyFieldContains[T any](fold cases.Caser, fields []Field[T], rec T, needle string) bool {
	for _, f := range fields {
		for _, v := range f.values(rec) {
			if strings.Contains(fold.String(v), needle) {
				return true
			}
		}
	}
	return false
}

// Filter keeps the records satisfying every condition. Within one condition the values
// are alternatives; a condition without values is ignored.
func Filter[T any](items []T, schema Schema[T], conds []Condition) ([]T, error) {
	type compiled struct {
		field  Field[T]
		wanted []string
	}

	fold := cases.Fold()
	active := make([]compiled, 0, len(conds))
	for _, c := range conds {
		f, err := schema.Lookup(c.Field)
		if err != nil {
			return nil, err
		}
		if len(c.Values) == 0 {
			continue
		}
		wanted := c.Values
		if f.Match == MatchContains {
			wanted = make([]string, len(c.Values))
			for i, v := range c.Values {
				wanted[i] = fold.String(v)
			}
		}
		active = append(active, compiled{field: f, wanted: wanted})
	}

	result := make([]T, 0, len(items))
	for _, rec := range items {
		keep := true
		for _, c := range active {
			if !matches(fold, c.field, rec, c.wanted) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, rec)
		}
	}
	return result, nil
}

func matches[T any](fold cases.Caser, f Field[T], rec T, wanted []string) bool {
	for _, v := range f.values(rec) {
		if f.Match == MatchContains {
			v = fold.String(v)
		}
		for _, w := range wanted {
			if f.Match == MatchContains && strings.Contains(v, w) {
				return true
			}
			if f.Match == MatchIn && v == w {
				return true
			}
		}
	}
	return false
}

// sortKey is the precomputed comparison key of one record.
type sortKey[T any] struct {
	rec  T
	id   string
	text string
	num  float64
	at   time.Time
	ok   bool
}

// SortBy returns a sorted copy of items. Ties are broken by record id, so a descending
// sort is the exact reverse of the ascending one. An empty field keeps the input order.
func SortBy[T any](items []T, schema Schema[T], s Sort) ([]T, error) {
	if s.Field == "" {
		return append([]T(nil), items...), nil
	}
	f, err := schema.Lookup(s.Field)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	keys := make([]sortKey[T], len(items))
	for i, rec := range items {
		k := sortKey[T]{rec: rec, ok: true}
		if schema.ID != nil {
			k.id = schema.ID(rec)
		}
		switch f.Kind {
		case KindNumber:
			k.num = f.Number(rec)
		case KindTime:
			k.at = f.Time(rec)
		case KindDate:
			k.at, err = time.Parse(f.Layout, f.Text(rec))
			k.ok = err == nil
		case KindRank:
			rank, found := f.Ranks[f.Text(rec)]
			k.num, k.ok = float64(rank), found
		default:
			k.text = fold.String(strings.Join(f.values(rec), " "))
		}
		keys[i] = k
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if s.Desc {
			a, b = b, a
		}
		if c := compareKeys(f.Kind, a, b); c != 0 {
			return c < 0
		}
		return a.id < b.id
	})

	result := make([]T, len(keys))
	for i, k := range keys {
		result[i] = k.rec
	}
	return result, nil
}

func compareKeys[T any](kind Kind, a, b sortKey[T]) int {
	// records whose key could not be resolved sort before resolved ones
	if a.ok != b.ok {
		if !a.ok {
			return -1
		}
		return 1
	}
	switch kind {
	case KindNumber, KindRank:
		switch {
		case a.num < b.num:
			return -1
		case a.num > b.num:
			return 1
		}
		return 0
	case KindTime, KindDate:
		return a.at.Compare(b.at)
	default:
		return strings.Compare(a.text, b.text)
	}
}

// Paginate slices [(page-1)*pageSize, page*pageSize) out of items.
// A page beyond the end yields an empty page.
func Paginate[T any](items []T, page, pageSize int) []T {
	pageSize = normalizePageSize(pageSize)
	if page < 1 {
		page = 1
	}
	// compared in pages so huge page sizes cannot overflow the offsets
	if page-1 >= TotalPages(len(items), pageSize) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	return append([]T(nil), items[start:end]...)
}

// TotalPages is the number of pages needed to show total records.
func TotalPages(total, pageSize int) int {
	pageSize = normalizePageSize(pageSize)
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// ClampPage moves page into [1, totalPages]; with no pages the first page is returned.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func normalizePageSize(pageSize int) int {
	if pageSize <= 0 {
		return config.DefaultPageSize
	}
	return pageSize
}
