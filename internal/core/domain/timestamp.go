package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for stored timestamps, tried in order. Older deployments
// wrote "2006-01-02 15:04:05.999999" with no zone; those are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// ParseTimestamp parses a stored timestamp in any accepted layout.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q: unrecognised layout", ErrInvalidTimestamp, s)
}

// decodeOptionalTimestamp reads a JSON timestamp value. Absent, null, empty
// and the legacy "None" all decode as nil.
func decodeOptionalTimestamp(raw json.RawMessage) (*time.Time, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `"None"`, `""`:
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: must be a string: %w", ErrInvalidTimestamp, err)
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UnmarshalJSON accepts both the current record shape and the one written by
// older deployments, which used naive timestamps and an "update_at" key.
func (t *Tweet) UnmarshalJSON(b []byte) error {
	type plain Tweet
	var rec struct {
		plain
		CreatedAt       json.RawMessage `json:"created_at"`
		UpdatedAt       json.RawMessage `json:"updated_at"`
		LegacyUpdatedAt json.RawMessage `json:"update_at"`
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}

	created, err := decodeOptionalTimestamp(rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}

	updatedRaw := rec.UpdatedAt
	if len(updatedRaw) == 0 {
		updatedRaw = rec.LegacyUpdatedAt
	}
	updated, err := decodeOptionalTimestamp(updatedRaw)
	if err != nil {
		return fmt.Errorf("updated_at: %w", err)
	}

	*t = Tweet(rec.plain)
	if created != nil {
		t.CreatedAt = *created
	}
	t.UpdatedAt = updated
	return nil
}
