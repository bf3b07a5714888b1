package commands

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/session"
	"github.com/penwyp/go-claude-statusline/internal/presentation/formatter"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

func newBlocksCmd(opts *globalOptions) *cobra.Command {
	var (
		output     string
		recent     bool
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List 5-hour billing blocks",
		Long: `Groups all usage into 5-hour billing blocks and prints them with token totals,
cost and burn rate. Gaps longer than a block are shown as idle blocks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			defer env.close()

			f, err := formatter.NewFormatter(output, util.GetTimeProvider().Location())
			if err != nil {
				return err
			}

			snap, err := env.loadSnapshot(model.SessionID{}, recent && !env.cfg.FullHistory)
			if err != nil {
				return err
			}

			blocks := snap.Blocks()
			if activeOnly {
				blocks = lo.Filter(blocks, func(b session.Block, _ int) bool { return session.IsActive(b) })
			}
			util.LogDebugf("Reporting %d blocks as %s", len(blocks), output)

			return f.Format(cmd.OutOrStdout(), formatter.NewBlockRows(blocks, snap.Now()))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table",
		"Output format (table, json, summary)")
	cmd.Flags().BoolVar(&recent, "recent", false,
		"Only load entries recent enough to affect today or the active block")
	cmd.Flags().BoolVar(&activeOnly, "active", false,
		"Only show the active block")

	return cmd
}
