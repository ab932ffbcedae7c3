package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/kvstore"
)

type note struct {
	Title   string    `json:"title"`
	Due     *DateTime `json:"due"`
	Created DateTime  `json:"created"`
	Tags    []string  `json:"tags"`
}

func newTestStorage() *Storage {
	return New(kvstore.NewMemory())
}

func TestSaveAndGetRoundTripsNestedDates(t *testing.T) {
	s := newTestStorage()

	original := note{
		Title:   "write report",
		Due:     NewDateTimePtr(time.Date(2025, 4, 2, 17, 0, 0, 0, time.UTC)),
		Created: NewDateTime(time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)),
		Tags:    []string{"work"},
	}
	require.NoError(t, s.Save("note", original))

	var decoded note
	ok, err := s.Get("note", &decoded)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, original.Title, decoded.Title)
	require.NotNil(t, decoded.Due)
	assert.True(t, decoded.Due.Equal(*original.Due))
	assert.True(t, decoded.Created.Equal(original.Created))
	assert.Equal(t, original.Tags, decoded.Tags)
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStorage()

	var decoded note
	ok, err := s.Get("nope", &decoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetCorruptDataIsDeserializationError(t *testing.T) {
	store := kvstore.NewMemory()
	require.NoError(t, store.Set("broken", "{not json"))
	s := New(store)

	var decoded note
	_, err := s.Get("broken", &decoded)
	require.Error(t, err)
	assert.True(t, apperrors.IsDeserialization(err))
}

func TestRawKeyClassBypassesJSON(t *testing.T) {
	store := kvstore.NewMemory()
	s := New(store)

	dataURL := "data:image/png;base64,iVBORw0KGgo="
	require.NoError(t, s.Save("user_1_avatar", dataURL))

	// The stored bytes are the bare string, not a JSON-quoted one.
	stored, ok, err := store.Get("user_1_avatar")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dataURL, stored)

	var got string
	found, err := s.Get("user_1_avatar", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, dataURL, got)
}

func TestRawKeyRejectsNonStringValues(t *testing.T) {
	s := newTestStorage()

	err := s.Save("avatar", 42)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindSerialization))
}

func TestHasRemoveClearKeys(t *testing.T) {
	s := newTestStorage()
	require.NoError(t, s.Save("a", "one"))
	require.NoError(t, s.Save("b", "two"))

	ok, err := s.Has("a")
	require.NoError(t, err)
	assert.True(t, ok)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Remove("a"))
	ok, err = s.Has("a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRawAndSetRawPreserveExactBytes(t *testing.T) {
	s := newTestStorage()
	require.NoError(t, s.SetRaw("snapshot", `{"v":1}`))

	raw, ok, err := s.Raw("snapshot")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"v":1}`, raw)
}
