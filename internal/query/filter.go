package query

type FilterOp int

const (
	OpEq FilterOp = iota
	OpILike
	OpIn
	OpAny
)

// Filter is a single predicate. Build it with Eq, ILike, In or AnyOf.
type Filter struct {
	Op     FilterOp
	Column string
	Value  any
	Values []any
	Any    []Filter
}

func Eq(col string, v any) Filter {
	return Filter{Op: OpEq, Column: col, Value: v}
}

// ILike matches rows whose column contains substr, ignoring case.
func ILike(col, substr string) Filter {
	return Filter{Op: OpILike, Column: col, Value: substr}
}

func In[T any](col string, values []T) Filter {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Filter{Op: OpIn, Column: col, Values: vs}
}

// AnyOf holds when at least one of filters holds.
func AnyOf(filters ...Filter) Filter {
	return Filter{Op: OpAny, Any: filters}
}
