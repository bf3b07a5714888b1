package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// JSONLEntry represents a single JSONL log entry in Claude Code format
type JSONLEntry struct {
	Timestamp string   `json:"timestamp,omitempty"`
	Type      string   `json:"type"`
	Uuid      string   `json:"uuid,omitempty"`
	SessionId string   `json:"sessionId,omitempty"`
	RequestId string   `json:"requestId,omitempty"`
	Version   string   `json:"version,omitempty"`
	CostUSD   *float64 `json:"costUSD,omitempty"`
	Message   Message  `json:"message"`
}

// Message represents the message structure in Claude Code logs
type Message struct {
	Id      string `json:"id,omitempty"`
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
	Model   string `json:"model,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Usage represents token usage in Claude Code logs
type Usage struct {
	InputTokens              int            `json:"input_tokens"`
	OutputTokens             int            `json:"output_tokens"`
	CacheCreationInputTokens int            `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int            `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
	ServiceTier              string         `json:"service_tier,omitempty"`
}

type CacheCreation struct {
	Ephemeral5mInputTokens int `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int `json:"ephemeral_1h_input_tokens"`
}

// UserEntry builds a prompt line. It has no usage and no ids.
func UserEntry(ts time.Time, content string) JSONLEntry {
	return JSONLEntry{
		Timestamp: formatTime(ts),
		Type:      "user",
		Version:   "1.0.80",
		Message:   Message{Role: "user", Content: content},
	}
}

// AssistantEntry builds a response line with usage.
func AssistantEntry(ts time.Time, msgID, reqID, model string, usage Usage) JSONLEntry {
	return JSONLEntry{
		Timestamp: formatTime(ts),
		Type:      "assistant",
		RequestId: reqID,
		Version:   "1.0.80",
		Message: Message{
			Id:      msgID,
			Role:    "assistant",
			Content: "ok",
			Model:   model,
			Usage:   &usage,
		},
	}
}

// CostEntry builds a response line carrying a pre-computed cost.
func CostEntry(ts time.Time, msgID, reqID string, usd float64) JSONLEntry {
	e := AssistantEntry(ts, msgID, reqID, "claude-sonnet-4-20250514", Usage{InputTokens: 1, OutputTokens: 1})
	e.CostUSD = &usd
	return e
}

func formatTime(ts time.Time) string {
	return ts.UTC().Format("2006-01-02T15:04:05.000Z")
}

// TestDataGenerator writes session logs under <baseDir>/projects.
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// SessionPath returns the log path for a project and session.
func (g *TestDataGenerator) SessionPath(projectName, sessionID string) string {
	return filepath.Join(g.baseDir, "projects", projectName, sessionID+".jsonl")
}

// WriteSession writes entries as the log of one session and returns its path.
func (g *TestDataGenerator) WriteSession(projectName, sessionID string, entries []JSONLEntry) (string, error) {
	path := g.SessionPath(projectName, sessionID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, g.writeJSONL(path, entries)
}

// AppendRaw appends raw lines, malformed or not, to a session log.
func (g *TestDataGenerator) AppendRaw(projectName, sessionID string, lines ...string) error {
	path := g.SessionPath(projectName, sessionID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// GenerateSimpleSession generates a session with two prompts and two responses
func (g *TestDataGenerator) GenerateSimpleSession(projectName, sessionID string, startTime time.Time) error {
	entries := []JSONLEntry{
		UserEntry(startTime, "Test user message"),
		AssistantEntry(startTime.Add(5*time.Second), "msg_"+sessionID+"_1", "req_"+sessionID+"_1",
			"claude-sonnet-4-20250514", Usage{
				InputTokens:              1000,
				OutputTokens:             500,
				CacheCreationInputTokens: 50,
				CacheReadInputTokens:     100,
			}),
		UserEntry(startTime.Add(30*time.Minute), "Another test message"),
		AssistantEntry(startTime.Add(30*time.Minute+5*time.Second), "msg_"+sessionID+"_2", "req_"+sessionID+"_2",
			"claude-sonnet-4-20250514", Usage{
				InputTokens:              2000,
				OutputTokens:             1000,
				CacheCreationInputTokens: 100,
				CacheReadInputTokens:     200,
			}),
	}
	_, err := g.WriteSession(projectName, sessionID, entries)
	return err
}

// GenerateLargeDataset generates numEntries responses one minute apart.
func (g *TestDataGenerator) GenerateLargeDataset(projectName, sessionID string, startTime time.Time, numEntries int) error {
	models := []string{"claude-opus-4-1-20250805", "claude-sonnet-4-20250514", "claude-3-5-haiku-20241022"}
	entries := make([]JSONLEntry, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		entries = append(entries, AssistantEntry(
			startTime.Add(time.Duration(i)*time.Minute),
			fmt.Sprintf("msg_%s_%d", sessionID, i),
			fmt.Sprintf("req_%s_%d", sessionID, i),
			models[i%len(models)],
			Usage{InputTokens: 100 + i, OutputTokens: 50 + i},
		))
	}
	_, err := g.WriteSession(projectName, sessionID, entries)
	return err
}

// writeJSONL writes entries to a JSONL file
func (g *TestDataGenerator) writeJSONL(filename string, entries []JSONLEntry) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := sonic.ConfigDefault.NewEncoder(file)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return err
		}
	}

	return nil
}

// CreateEmptyProject creates a project directory holding an empty session log
func (g *TestDataGenerator) CreateEmptyProject(projectName string) error {
	_, err := g.WriteSession(projectName, "empty", nil)
	return err
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}
