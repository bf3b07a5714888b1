package model

import (
	"strings"
	"unique"
)

// SessionID identifies one Claude session. It is interned so that
// comparisons across a large snapshot reduce to a pointer compare.
type SessionID struct {
	h unique.Handle[string]
}

// NewSessionID interns s and returns its session id.
func NewSessionID(s string) SessionID {
	if s == "" {
		return SessionID{}
	}
	return SessionID{h: unique.Make(s)}
}

// String returns the raw session id.
func (id SessionID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether id is the empty session id.
func (id SessionID) IsZero() bool {
	return id.h == unique.Handle[string]{}
}

// Equal reports whether both ids name the same session.
func (id SessionID) Equal(other SessionID) bool {
	return id.h == other.h
}

// MarshalText implements encoding.TextMarshaler.
func (id SessionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SessionID) UnmarshalText(b []byte) error {
	*id = NewSessionID(string(b))
	return nil
}

type MessageID string

type RequestID string

// ModelID is the model string reported by the API, e.g. "claude-sonnet-4-20250514".
type ModelID string

func (m ModelID) String() string { return string(m) }

func (m ModelID) IsOpus() bool   { return m.contains("opus") }
func (m ModelID) IsSonnet() bool { return m.contains("sonnet") }
func (m ModelID) IsHaiku() bool  { return m.contains("haiku") }

func (m ModelID) contains(keyword string) bool {
	return strings.Contains(strings.ToLower(string(m)), keyword)
}

// UniqueHash is the content address of a logical API response: "<message id>:<request id>".
type UniqueHash string

// NewUniqueHash builds the hash for a response. The second return value is
// false when either id is missing, in which case the record cannot be
// deduplicated.
func NewUniqueHash(msg MessageID, req RequestID) (UniqueHash, bool) {
	if msg == "" || req == "" {
		return "", false
	}
	return UniqueHash(string(msg) + ":" + string(req)), true
}
