package domain

// FromPtr returns the first non-nil value among ptrs, or fallback.
func FromPtr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// StrFromPtr is FromPtr for strings, also skipping empty values.
func StrFromPtr(fallback string, ptrs ...*string) string {
	for _, p := range ptrs {
		if p != nil && *p != "" {
			return *p
		}
	}
	return fallback
}
