package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/archive"
	"github.com/matzehuels/geomech/pkg/config"
	"github.com/matzehuels/geomech/pkg/tools"
)

// runsCommand lists and shows archived runs.
func (c *CLI) runsCommand() *cobra.Command {
	var (
		tool   string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs",
		Long: `List archived runs, newest first.

Runs are archived when [archive] backend is "sqlite" or "mongo" in the
configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if c.Config.Archive.Backend == config.BackendNone {
				printWarning(out, "Run archiving is disabled")
				printDetail(out, "set [archive] backend to sqlite or mongo")
				return nil
			}
			if tool != "" {
				t, err := lookupTool(tools.Default(), tool)
				if err != nil {
					return err
				}
				tool = t.Name
			}

			store, err := c.openArchive(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			recs, err := store.List(ctx, archive.ListOptions{Tool: tool, Limit: limit})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, recs)
			}
			if len(recs) == 0 {
				printInfo(out, "No runs archived yet")
				return nil
			}
			rows := make([][]string, len(recs))
			for i, r := range recs {
				rows[i] = []string{shortID(r.ID), r.Tool, runStatus(r), cachedLabel(r.Cached), formatRelativeTime(r.CreatedAt)}
			}
			fmt.Fprintln(out, renderTable([]string{"Run", "Tool", "Status", "Cache", "When"}, rows))
			printDetail(out, "%d runs", len(recs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tool, "tool", "t", "", "only runs of this tool")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.RegisterFlagCompletionFunc("tool", func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeToolNames(cmd, nil, toComplete)
	})

	cmd.AddCommand(c.runsShowCommand())
	return cmd
}

// runsShowCommand prints one archived run.
func (c *CLI) runsShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := c.openArchive(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, rec)
			}
			return printRecord(out, rec)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printRecord(w io.Writer, rec archive.Record) error {
	fmt.Fprintln(w, StyleTitle.Render(rec.Tool))
	printKeyValues(w, []kv{
		{"run", rec.ID},
		{"status", runStatus(rec)},
		{"cache", cachedLabel(rec.Cached)},
		{"duration", rec.Duration.String()},
		{"created", rec.CreatedAt.Local().Format("2006-01-02 15:04:05")},
	})

	printTitle(w, "Input")
	if err := printJSONRows(w, rec.Input); err != nil {
		return err
	}
	if rec.Failed() {
		printTitle(w, "Error")
		printError(w, "%s", rec.Error)
		return nil
	}
	printTitle(w, "Result")
	return printJSONRows(w, rec.Output)
}

func printJSONRows(w io.Writer, data []byte) error {
	rows, err := flattenJSON(data)
	if err != nil {
		return err
	}
	printKeyValues(w, rows)
	return nil
}

func runStatus(r archive.Record) string {
	if r.Failed() {
		return r.ErrorCode
	}
	return "ok"
}

func cachedLabel(cached bool) string {
	if cached {
		return iconCached
	}
	return iconFresh
}
