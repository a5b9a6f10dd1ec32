package models

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Hash256 is a 32-byte content-addressed digest. Question payloads,
// answer payloads and evaluation results are stored elsewhere and
// referenced here only by digest.
type Hash256 [32]byte

// ZeroHash is the sentinel result hash used when an evaluation result
// could not be decoded.
var ZeroHash Hash256

// ParseHash256 parses a "0x"-prefixed 64-character hex digest.
// Anything else (wrong length, missing prefix, non-hex characters) is
// rejected.
func ParseHash256(s string) (Hash256, error) {
	var h Hash256
	if !strings.HasPrefix(s, "0x") {
		return h, fmt.Errorf("hash %q: missing 0x prefix", s)
	}
	raw := s[2:]
	if len(raw) != 64 {
		return h, fmt.Errorf("hash %q: expected 64 hex characters, got %d", s, len(raw))
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return h, fmt.Errorf("hash %q: %w", s, err)
	}
	copy(h[:], b)
	return h, nil
}

// MustParseHash256 is a test helper; it panics on malformed input.
func MustParseHash256(s string) Hash256 {
	h, err := ParseHash256(s)
	if err != nil {
		panic(err)
	}
	return h
}

func (h Hash256) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash256) IsZero() bool {
	return h == Hash256{}
}

// Value implements driver.Valuer so the digest is stored as its hex
// string form.
func (h Hash256) Value() (driver.Value, error) {
	return h.String(), nil
}

// Scan implements sql.Scanner.
func (h *Hash256) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseHash256(v)
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	case []byte:
		parsed, err := ParseHash256(string(v))
		if err != nil {
			return err
		}
		*h = parsed
		return nil
	case nil:
		*h = Hash256{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Hash256", src)
	}
}

func (h Hash256) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash256) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseHash256(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
