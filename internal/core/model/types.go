package model

import (
	"time"
)

// UsageRecordData is one line of a session log as written by Claude Code.
// Only the fields needed for cost accounting are decoded; everything else
// in the line is ignored.
type UsageRecordData struct {
	Timestamp string    `json:"timestamp"`
	Model     ModelID   `json:"model,omitempty"`
	CostUSD   *float64  `json:"costUSD,omitempty"`
	Message   *Message  `json:"message,omitempty"`
	RequestID RequestID `json:"requestId,omitempty"`
}

type Message struct {
	ID    MessageID `json:"id,omitempty"`
	Model ModelID   `json:"model,omitempty"`
	Usage *Usage    `json:"usage,omitempty"`
}

// Usage is the token accounting block of an API response. Older logs only
// carry the flat cache_creation_input_tokens count; newer ones split cache
// writes by TTL under cache_creation.
type Usage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
}

type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

// TokenUsage is the normalized, non-negative token breakdown used for pricing.
type TokenUsage struct {
	Input           int64
	Output          int64
	CacheCreation5m int64
	CacheCreation1h int64
	CacheRead       int64
}

// Total returns the sum of all token tiers.
func (t TokenUsage) Total() int64 {
	return t.Input + t.Output + t.CacheCreation5m + t.CacheCreation1h + t.CacheRead
}

// Tokens normalizes the usage block. The TTL breakdown wins when present,
// otherwise the flat cache write count is billed at the 5 minute rate.
func (u *Usage) Tokens() TokenUsage {
	if u == nil {
		return TokenUsage{}
	}
	t := TokenUsage{
		Input:     nonNegative(u.InputTokens),
		Output:    nonNegative(u.OutputTokens),
		CacheRead: nonNegative(u.CacheReadInputTokens),
	}
	if cc := u.CacheCreation; cc != nil && (cc.Ephemeral5mInputTokens > 0 || cc.Ephemeral1hInputTokens > 0) {
		t.CacheCreation5m = nonNegative(cc.Ephemeral5mInputTokens)
		t.CacheCreation1h = nonNegative(cc.Ephemeral1hInputTokens)
	} else {
		t.CacheCreation5m = nonNegative(u.CacheCreationInputTokens)
	}
	return t
}

func nonNegative(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// UsageRecord is a parsed log line tagged with the session it was read from.
// The session id comes from the file name, never from the line itself.
type UsageRecord struct {
	Data      UsageRecordData
	SessionID SessionID
}

// Timestamp parses the record timestamp. The boolean is false when the
// timestamp is missing or malformed.
func (r UsageRecord) Timestamp() (time.Time, bool) {
	return ParseTimestamp(r.Data.Timestamp)
}

// EffectiveModel returns the model that served the response: the message
// model when set, otherwise the outer model.
func (r UsageRecord) EffectiveModel() ModelID {
	if r.Data.Message != nil && r.Data.Message.Model != "" {
		return r.Data.Message.Model
	}
	return r.Data.Model
}

// Hash returns the dedup key of the record when both ids are present.
func (r UsageRecord) Hash() (UniqueHash, bool) {
	var msg MessageID
	if r.Data.Message != nil {
		msg = r.Data.Message.ID
	}
	return NewUniqueHash(msg, r.Data.RequestID)
}

// TimestampLayout is the fixed-width UTC layout the logs use. Timestamps in
// this layout sort lexicographically in time order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// ParseTimestamp parses an RFC3339 timestamp with optional fractional seconds.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatTimestamp renders t in the log timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
