package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/narrator-cli/internal/core/ports/driven"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStoreFrom(t *testing.T) {
	seed := map[string]any{"segment.length": 200, "jobs.owner": "Alice"}
	store := NewConfigStoreFrom(seed)

	assert.Equal(t, 200, store.GetInt("segment.length"))
	assert.Equal(t, "Alice", store.GetString("jobs.owner"))

	// The seed map is copied.
	seed["jobs.owner"] = "Bob"
	assert.Equal(t, "Alice", store.GetString("jobs.owner"))
}

func TestConfigStore_Set_Get(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("rules.extra-spaces.enabled", false))

	val, ok := store.Get("rules.extra-spaces.enabled")
	assert.True(t, ok)
	assert.Equal(t, false, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("server.port", 9090))

	assert.Equal(t, 9090, store.GetInt("server.port"))
}

func TestConfigStore_FailWrites(t *testing.T) {
	store := NewConfigStore()
	boom := errors.New("disk full")

	store.FailWrites(boom)
	err := store.Set("jobs.owner", "Alice")
	require.ErrorIs(t, err, boom)
	_, ok := store.Get("jobs.owner")
	assert.False(t, ok)

	store.FailWrites(nil)
	require.NoError(t, store.Set("jobs.owner", "Alice"))
	assert.Equal(t, "Alice", store.GetString("jobs.owner"))
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("str", "hello"))
	require.NoError(t, store.Set("num", 42))

	assert.Equal(t, "hello", store.GetString("str"))
	assert.Equal(t, "", store.GetString("num"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  int
	}{
		{"int", 42, 42},
		{"int64", int64(43), 43},
		{"float64", 3.7, 3},
		{"numeric string", "250", 250},
		{"non-numeric string", "abc", 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("key", tt.value))
			assert.Equal(t, tt.want, store.GetInt("key"))
		})
	}

	assert.Equal(t, 0, NewConfigStore().GetInt("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"string true", "true", true},
		{"string garbage", "yes please", false},
		{"int", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewConfigStore()
			require.NoError(t, store.Set("key", tt.value))
			assert.Equal(t, tt.want, store.GetBool("key"))
		})
	}

	assert.False(t, NewConfigStore().GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("jobs.extensions", []string{".txt", ".md"}))
	require.NoError(t, store.Set("mixed", []any{".txt", 3, ".md"}))
	require.NoError(t, store.Set("scalar", ".txt"))

	exts := store.GetStringSlice("jobs.extensions")
	assert.Equal(t, []string{".txt", ".md"}, exts)

	// Returned slices are copies.
	exts[0] = ".doc"
	assert.Equal(t, []string{".txt", ".md"}, store.GetStringSlice("jobs.extensions"))

	assert.Equal(t, []string{".txt", ".md"}, store.GetStringSlice("mixed"))
	assert.Nil(t, store.GetStringSlice("scalar"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Keys_Sorted(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("server.port", 8080))
	require.NoError(t, store.Set("jobs.owner", "Alice"))
	require.NoError(t, store.Set("rules.extra-spaces.enabled", true))

	assert.Equal(t, []string{"jobs.owner", "rules.extra-spaces.enabled", "server.port"}, store.Keys())
}

func TestConfigStore_Save_CountsCalls(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, 0, store.Saves())

	require.NoError(t, store.Save())
	require.NoError(t, store.Save())

	assert.Equal(t, 2, store.Saves())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_InterfaceCompliance(t *testing.T) {
	var store driven.ConfigStore = NewConfigStore()
	require.NoError(t, store.Set("k", "v"))
	assert.Equal(t, "v", store.GetString("k"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key-" + string(rune('a'+id%10))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
			_ = store.Save()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
	assert.Equal(t, 100, store.Saves())
}
