package ptr

import "time"

func To[T any](v T) *T {
	return &v
}

// TimeClone copies the pointed-to time so the caller owns its value.
func TimeClone(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
