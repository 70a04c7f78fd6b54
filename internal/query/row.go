package query

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Row is one record as returned by a Client. Joined relations appear under
// their relation name, either as a single Row or as a list of rows depending
// on the backend.
type Row map[string]any

// One returns the related record stored under rel, accepting both the
// single-record and the list shape. ok is false when there is no record.
func (r Row) One(rel string) (Row, bool) {
	switch v := r[rel].(type) {
	case Row:
		return v, v != nil
	case map[string]any:
		return Row(v), v != nil
	case []Row:
		if len(v) > 0 && v[0] != nil {
			return v[0], true
		}
	case []map[string]any:
		if len(v) > 0 && v[0] != nil {
			return Row(v[0]), true
		}
	case []any:
		if len(v) > 0 {
			return asRow(v[0])
		}
	}
	return nil, false
}

func asRow(v any) (Row, bool) {
	switch m := v.(type) {
	case Row:
		return m, m != nil
	case map[string]any:
		return Row(m), m != nil
	}
	return nil, false
}

// Decode copies row into the struct pointed to by out using `db` tags.
// Numeric strings and date-only strings are converted.
func Decode(row Row, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.DateOnly),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(row))
}
