package specification

// Specification is a filter over in-memory records.
type Specification[T any] interface {
	IsSatisfiedBy(item T) bool
}

// Func adapts a plain predicate.
type Func[T any] func(item T) bool

func (f Func[T]) IsSatisfiedBy(item T) bool { return f(item) }

// SatisfiesAll reports whether item passes every spec. No specs means match.
func SatisfiesAll[T any](item T, specs ...Specification[T]) bool {
	for _, s := range specs {
		if s != nil && !s.IsSatisfiedBy(item) {
			return false
		}
	}
	return true
}
