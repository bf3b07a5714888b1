package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-claude-statusline/internal/core/model"
	"github.com/penwyp/go-claude-statusline/internal/core/pricing"
	"github.com/penwyp/go-claude-statusline/internal/util"
)

func newPricingCmd(opts *globalOptions) *cobra.Command {
	var dumpFile string

	cmd := &cobra.Command{
		Use:   "pricing [model...]",
		Short: "Show the per-million-token rates used for cost calculation",
		Long: `Without arguments, lists every model in the pricing table. With model names,
shows the rates each one resolves to and how it matched (exact, substring, family or none).

--dump writes the active table as JSON; edit it and pass it back with --pricing-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := prepare(cmd, opts)
			if err != nil {
				return err
			}
			defer env.close()

			table := env.calc.Table()
			out := cmd.OutOrStdout()

			if dumpFile != "" {
				source := "default"
				if env.cfg.PricingFile != "" {
					source = env.cfg.PricingFile
				}
				path := util.ExpandPath(dumpFile)
				if err := pricing.SaveTableFile(path, source, table); err != nil {
					return err
				}
				_, err := fmt.Fprintf(out, "Wrote %d models to %s\n", table.Len(), path)
				return err
			}

			if len(args) == 0 {
				for _, id := range table.Models() {
					p, _ := table.Lookup(id)
					writeRates(out, id.String(), "", p)
				}
				return nil
			}

			for _, name := range args {
				p, kind := table.Lookup(model.ModelID(name))
				writeRates(out, name, kind.String(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dumpFile, "dump", "",
		"Write the pricing table to this JSON file")

	return cmd
}

func writeRates(w io.Writer, name, match string, p pricing.ModelPricing) {
	m := p.PerMillionRates()
	label := util.PadRight(name, 28)
	if match != "" {
		label += " " + util.PadRight("("+match+")", 12)
	}
	fmt.Fprintf(w, "%s input %s  output %s  cache write %s / 1h %s  cache read %s\n",
		label,
		util.FormatCurrency(m.Input),
		util.FormatCurrency(m.Output),
		util.FormatCurrency(m.CacheCreation),
		util.FormatCurrency(m.CacheCreation1h),
		util.FormatCurrency(m.CacheRead),
	)
}
