package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/presentation/statusline"
)

var Version = "dev"

// NewRootCmd builds the command tree. The root command renders the statusline.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}
	var inputFile string

	root := &cobra.Command{
		Use:   "go-claude-statusline [flags]",
		Short: "Claude Code statusline with usage costs",
		Long: `go-claude-statusline reads the statusline hook JSON from stdin and prints one line
with today's cost, the current session's cost and the active 5-hour billing block.

Usage logs are read from every Claude data directory found ($CLAUDE_CONFIG_DIR,
~/.config/claude, ~/.claude).

Examples:
  go-claude-statusline                          # Read hook JSON from stdin
  go-claude-statusline --input hook.json        # Read hook JSON from a file
  go-claude-statusline --full-history           # Scan all logs, not just recent ones
  go-claude-statusline blocks --output json     # List billing blocks as JSON
  go-claude-statusline pricing claude-opus-4-1  # Show the rates used for a model`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatusline(cmd, opts, inputFile)
		},
	}

	opts.register(root)
	root.Flags().StringVarP(&inputFile, "input", "i", "",
		"Read hook JSON from this file instead of stdin")

	root.AddCommand(
		newBlocksCmd(opts),
		newPricingCmd(opts),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("go-claude-statusline %s\n", Version))

	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func runStatusline(cmd *cobra.Command, opts *globalOptions, inputFile string) error {
	env, err := prepare(cmd, opts)
	if err != nil {
		return err
	}
	defer env.close()

	data, err := readInput(cmd.InOrStdin(), inputFile)
	if err != nil {
		return err
	}
	in, err := model.ParseStatuslineInput(data)
	if err != nil {
		return err
	}

	snap, err := env.loadSnapshot(in.Session(), !env.cfg.FullHistory)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := statusline.NewRenderer(out, env.cfg.Color)
	_, err = fmt.Fprintln(out, r.Render(statusline.NewLine(in, snap)))
	return err
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input %s: %w", path, err)
		}
		return data, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
