// Package patch holds helpers for partial updates where a nil pointer means
// "leave unchanged".
package patch

func Coalesce[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
