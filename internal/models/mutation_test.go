package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationMethod_HTTPMethod(t *testing.T) {
	tests := []struct {
		method MutationMethod
		want   string
		valid  bool
	}{
		{method: MethodCreate, want: http.MethodPost, valid: true},
		{method: MethodUpdate, want: http.MethodPut, valid: true},
		{method: MethodDelete, want: http.MethodDelete, valid: true},
		{method: MutationMethod("PATCH"), want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.HTTPMethod())
			assert.Equal(t, tt.valid, tt.method.Valid())
		})
	}
}

func TestCacheEntry_IsFresh(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	entry := &CacheEntry{
		Key:       "/districts:{}",
		Value:     json.RawMessage(`[1,2,3]`),
		Timestamp: now,
		TTL:       100 * time.Millisecond,
	}

	assert.True(t, entry.IsFresh(now))
	assert.True(t, entry.IsFresh(now.Add(99*time.Millisecond)))
	assert.False(t, entry.IsFresh(now.Add(100*time.Millisecond)))
	assert.False(t, entry.IsFresh(now.Add(150*time.Millisecond)))
	assert.Equal(t, 150*time.Millisecond, entry.Age(now.Add(150*time.Millisecond)))
}

func TestCacheEntry_Clone(t *testing.T) {
	entry := &CacheEntry{
		Key:       "/parties:{}",
		Value:     json.RawMessage(`{"a":1}`),
		Timestamp: time.Now(),
		TTL:       time.Minute,
	}

	clone := entry.Clone()
	require.Equal(t, entry, clone)

	// Изменение копии не затрагивает оригинал
	clone.Value[2] = 'b'
	assert.Equal(t, `{"a":1}`, string(entry.Value))
}
