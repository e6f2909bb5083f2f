//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequestMap turns a request DTO into its JSON object form and applies muts,
// so a test can break one field at a time.
func RequestMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()

	encoded, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(encoded, &m))

	for _, mutate := range muts {
		mutate(m)
	}
	return m
}

// Field sets key to value, or removes key when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
