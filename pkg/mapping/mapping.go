package mapping

// MapViewModels converts every entity with mapFunc, preserving order.
func MapViewModels[T any, V any](entities []T, mapFunc func(T) V) []V {
	viewModels := make([]V, len(entities))
	for i, entity := range entities {
		viewModels[i] = mapFunc(entity)
	}
	return viewModels
}

// Or returns the first non-zero value.
func Or[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

func Pointer[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
