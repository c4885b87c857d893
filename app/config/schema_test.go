package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var sch map[string]any
	require.NoError(t, json.Unmarshal(data, &sch))
	assert.Equal(t, "authcheck suite", sch["title"])
	assert.Contains(t, string(data), `"bank_account_operation"`)
	assert.Contains(t, string(data), `"mobile_breakpoint"`)

	again, err := Schema()
	require.NoError(t, err)
	assert.Equal(t, data, again, "schema is built once")
}

func TestNewValidator(t *testing.T) {
	vldt, err := NewValidator()
	require.NoError(t, err)

	t.Run("non-object document", func(t *testing.T) {
		err := vldt([]any{"a", "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "suite validation failed")
	})

	t.Run("wrong type of nested field", func(t *testing.T) {
		doc := map[string]any{"routes": "not-an-object"}
		require.Error(t, vldt(doc))
	})

	t.Run("unencodable document", func(t *testing.T) {
		err := vldt(map[string]any{"routes": make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encode")
	})
}
