package diff

import (
	"reflect"

	odiff "github.com/r3labs/diff/v3"

	"logidash/entity"
)

func GetCustomDiffer() *odiff.Differ {
	ret, err := odiff.NewDiffer(odiff.CustomValueDiffers(&SnapshotComparer{}))
	if err != nil {
		panic(err)
	}
	return ret
}

// Changes returns the field-level changelog between two versions of a record.
func Changes(a, b interface{}) (odiff.Changelog, error) {
	return GetCustomDiffer().Diff(a, b)
}

// SnapshotComparer reports an embedded driver snapshot as one change
// instead of one change per driver field.
type SnapshotComparer struct{}

var (
	driverType = reflect.TypeOf(entity.Driver{})
)

func isDriver(v reflect.Value) bool {
	if v.Kind() == reflect.Ptr {
		return v.Type().Elem() == driverType
	}
	return v.Kind() == reflect.Struct && v.Type() == driverType
}

// Match check is field match this custom type
func (c SnapshotComparer) Match(a, b reflect.Value) bool {
	aok := a.IsValid() && isDriver(a)
	bok := b.IsValid() && isDriver(b)
	return (aok && bok) || (a.Kind() == reflect.Invalid && bok) || (b.Kind() == reflect.Invalid && aok)
}

// Diff adds a single create, delete or update for the whole snapshot.
func (c SnapshotComparer) Diff(_ odiff.DiffType, _ odiff.DiffFunc, cl *odiff.Changelog, path []string, a reflect.Value, b reflect.Value, _ interface{}) error {
	valA := indirect(a)
	valB := indirect(b)

	switch {
	case !valA.IsValid() && !valB.IsValid():
		return nil
	case !valA.IsValid():
		cl.Add(odiff.CREATE, path, nil, valB.Interface())
		return nil
	case !valB.IsValid():
		cl.Add(odiff.DELETE, path, valA.Interface(), nil)
		return nil
	}

	d1 := valA.Interface().(entity.Driver)
	d2 := valB.Interface().(entity.Driver)
	if d1 != d2 {
		cl.Add(odiff.UPDATE, path, d1, d2)
	}
	return nil
}

// InsertParentDiffer do something with parent,
// the snapshot is a leaf, so do nothing
func (c SnapshotComparer) InsertParentDiffer(_ func(path []string, a reflect.Value, b reflect.Value, p interface{}) error) {
}

func indirect(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		return v.Elem()
	}
	return v
}
