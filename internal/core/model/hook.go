package model

import (
	"fmt"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// StatuslineInput is the JSON document Claude Code pipes to a statusline command.
type StatuslineInput struct {
	SessionID      string         `json:"session_id"`
	TranscriptPath string         `json:"transcript_path,omitempty"`
	Cwd            string         `json:"cwd,omitempty"`
	Model          HookModel      `json:"model"`
	Workspace      *HookWorkspace `json:"workspace,omitempty"`
	Version        string         `json:"version,omitempty"`
}

type HookModel struct {
	ID          ModelID `json:"id"`
	DisplayName string  `json:"display_name"`
}

type HookWorkspace struct {
	CurrentDir string `json:"current_dir"`
	ProjectDir string `json:"project_dir"`
}

// ParseStatuslineInput decodes the hook document.
func ParseStatuslineInput(data []byte) (*StatuslineInput, error) {
	var in StatuslineInput
	if err := sonic.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid statusline input: %w", err)
	}
	return &in, nil
}

// Session returns the interned session id of the invoking session.
func (in *StatuslineInput) Session() SessionID {
	return NewSessionID(in.SessionID)
}

// ModelName returns the display name, falling back to the model id.
func (in *StatuslineInput) ModelName() string {
	if in.Model.DisplayName != "" {
		return in.Model.DisplayName
	}
	return string(in.Model.ID)
}

// DirName returns the base name of the working directory, preferring the
// workspace current dir over cwd.
func (in *StatuslineInput) DirName() string {
	dir := in.Cwd
	if in.Workspace != nil && in.Workspace.CurrentDir != "" {
		dir = in.Workspace.CurrentDir
	}
	if dir == "" {
		return ""
	}
	return filepath.Base(dir)
}
