package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ExerciseRef identifies an exercise in the merged catalog. The identifier
// space is deliberately heterogeneous: built-in catalog entries carry numeric
// ids, user-created custom exercises carry string ids. Exactly one of the two
// fields is set.
type ExerciseRef struct {
	Catalog int64
	Custom  string
}

// CatalogRef returns a reference to a built-in catalog exercise.
func CatalogRef(id int64) ExerciseRef {
	return ExerciseRef{Catalog: id}
}

// CustomRef returns a reference to a user-created custom exercise.
func CustomRef(id string) ExerciseRef {
	return ExerciseRef{Custom: id}
}

// IsCustom reports whether the reference points at a custom exercise.
func (r ExerciseRef) IsCustom() bool {
	return r.Custom != ""
}

// IsZero reports whether the reference is unset.
func (r ExerciseRef) IsZero() bool {
	return r.Custom == "" && r.Catalog == 0
}

func (r ExerciseRef) String() string {
	if r.IsCustom() {
		return r.Custom
	}
	return strconv.FormatInt(r.Catalog, 10)
}

// MarshalJSON keeps the original wire shape: a bare number for catalog
// entries, a string for custom ones.
func (r ExerciseRef) MarshalJSON() ([]byte, error) {
	if r.IsCustom() {
		return json.Marshal(r.Custom)
	}
	return json.Marshal(r.Catalog)
}

func (r *ExerciseRef) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*r = CatalogRef(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("exercise ref must be a number or a string: %w", err)
	}
	*r = CustomRef(s)
	return nil
}

// MarshalBSONValue stores the reference the same way it travels over JSON.
func (r ExerciseRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.IsCustom() {
		return bson.MarshalValue(r.Custom)
	}
	return bson.MarshalValue(r.Catalog)
}

func (r *ExerciseRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		*r = CustomRef(s)
		return nil
	case bsontype.Int32:
		var v int32
		if err := bson.UnmarshalValue(t, data, &v); err != nil {
			return err
		}
		*r = CatalogRef(int64(v))
		return nil
	case bsontype.Int64:
		var v int64
		if err := bson.UnmarshalValue(t, data, &v); err != nil {
			return err
		}
		*r = CatalogRef(v)
		return nil
	case bsontype.Double:
		var v float64
		if err := bson.UnmarshalValue(t, data, &v); err != nil {
			return err
		}
		*r = CatalogRef(int64(v))
		return nil
	default:
		return fmt.Errorf("cannot decode %s into an exercise ref", t)
	}
}
