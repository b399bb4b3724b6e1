package storage

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// GetJSON reads and decodes the blob at key into dst. A missing key, a
// storage failure or a corrupt blob all leave dst untouched and return false:
// persisted state degrades to the empty collection instead of failing.
func GetJSON(ctx context.Context, s Store, key string, dst interface{}) bool {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok || len(raw) == 0 {
		return false
	}
	if !gjson.ValidBytes(raw) {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false
	}
	return true
}

// SetJSON encodes value and writes it at key. The write is best-effort: the
// returned error is informational and callers log rather than propagate it.
func SetJSON(ctx context.Context, s Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
