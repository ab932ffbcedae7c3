// Package storage converts typed values to and from the string format the
// key/value store requires, preserving type identity for dates across the
// round trip. All date-aware serialization lives here; nothing above this
// layer touches the wire format.
package storage

import (
	"encoding/json"
	"strings"

	"github.com/taskvault/taskvault/internal/apperrors"
	"github.com/taskvault/taskvault/internal/kvstore"
)

// Storage is the typed serialization layer over a key/value store.
type Storage struct {
	store kvstore.Store
}

// New creates a Storage over the given store.
func New(store kvstore.Store) *Storage {
	return &Storage{store: store}
}

// isRawKey reports whether key belongs to the raw-string class. Avatar
// payloads are data-URL strings already and bypass JSON entirely.
func isRawKey(key string) bool {
	return key == "avatar" || strings.HasSuffix(key, "_avatar")
}

// Save serializes value and writes it under key. Raw-class keys require a
// string value.
func (s *Storage) Save(key string, value any) error {
	var serialized string

	if isRawKey(key) {
		str, ok := value.(string)
		if !ok {
			return apperrors.New(apperrors.KindSerialization,
				"avatar data must be a string")
		}
		serialized = str
	} else {
		data, err := json.Marshal(value)
		if err != nil {
			return apperrors.Wrap(apperrors.KindSerialization,
				"failed to serialize data for key "+key, err)
		}
		serialized = string(data)
	}

	if err := s.store.Set(key, serialized); err != nil {
		return apperrors.Wrap(apperrors.KindPersistence,
			"failed to save data for key "+key, err)
	}
	return nil
}

// Get reads the value under key into dest, reporting whether the key was
// present. For raw-class keys dest must be a *string; a corrupted JSON
// payload under a raw-class key degrades to the raw string instead of
// failing.
func (s *Storage) Get(key string, dest any) (bool, error) {
	data, ok, err := s.store.Get(key)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindPersistence,
			"failed to read data for key "+key, err)
	}
	if !ok {
		return false, nil
	}

	if isRawKey(key) {
		str, ok := dest.(*string)
		if !ok {
			return false, apperrors.New(apperrors.KindDeserialization,
				"avatar data must be read into a string")
		}
		*str = data
		return true, nil
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return false, apperrors.Wrap(apperrors.KindDeserialization,
			"failed to parse stored data for key "+key, err)
	}
	return true, nil
}

// Remove deletes the key.
func (s *Storage) Remove(key string) error {
	if err := s.store.Delete(key); err != nil {
		return apperrors.Wrap(apperrors.KindPersistence,
			"failed to remove data for key "+key, err)
	}
	return nil
}

// Clear deletes every key.
func (s *Storage) Clear() error {
	if err := s.store.Clear(); err != nil {
		return apperrors.Wrap(apperrors.KindPersistence,
			"failed to clear storage", err)
	}
	return nil
}

// Has reports whether key is present without decoding it.
func (s *Storage) Has(key string) (bool, error) {
	_, ok, err := s.store.Get(key)
	if err != nil {
		return false, apperrors.Wrap(apperrors.KindPersistence,
			"failed to check key "+key, err)
	}
	return ok, nil
}

// Keys lists every stored key. Used by backup and restore.
func (s *Storage) Keys() ([]string, error) {
	keys, err := s.store.Keys()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindPersistence,
			"failed to list keys", err)
	}
	return keys, nil
}

// Raw returns the unparsed stored string for key. Used by backup.
func (s *Storage) Raw(key string) (string, bool, error) {
	data, ok, err := s.store.Get(key)
	if err != nil {
		return "", false, apperrors.Wrap(apperrors.KindPersistence,
			"failed to read key "+key, err)
	}
	return data, ok, nil
}

// SetRaw writes an unparsed string under key. Used by restore.
func (s *Storage) SetRaw(key, value string) error {
	if err := s.store.Set(key, value); err != nil {
		return apperrors.Wrap(apperrors.KindPersistence,
			"failed to write key "+key, err)
	}
	return nil
}
