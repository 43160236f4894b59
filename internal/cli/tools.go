package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/tools"
)

// toolPrefix is the common prefix of every tool name. The CLI accepts names
// without it.
const toolPrefix = "geomech_"

// toolsCommand lists the registered tools or describes one of them.
func (c *CLI) toolsCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "tools [tool]",
		Short: "List the available calculations",
		Long: `List the available calculations, optionally filtered to one category.

With a tool name, show its request fields and an example request.`,
		Example: `  geomech tools
  geomech tools --category stability
  geomech tools vertical_stress`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeToolNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reg := tools.Default()

			if len(args) == 1 {
				t, err := lookupTool(reg, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, t)
				}
				printToolDetail(out, t)
				return nil
			}

			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			list := reg.List(cat)
			if asJSON {
				return writeJSON(out, list)
			}
			rows := make([][]string, len(list))
			for i, t := range list {
				rows[i] = []string{t.Name, string(t.Category), t.Summary}
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Category", "Summary"}, rows))
			printDetail(out, "%d tools", len(list))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list tools in this category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(tools.Categories))
		for i, c := range tools.Categories {
			names[i] = string(c)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func printToolDetail(w io.Writer, t tools.Tool) {
	fmt.Fprintln(w, StyleTitle.Render(t.Name))
	printDetail(w, "%s · %s", t.Category, t.Summary)

	printTitle(w, "Fields")
	rows := make([][]string, len(t.Fields))
	for i, f := range t.Fields {
		req := ""
		if f.Required {
			req = "required"
		}
		rows[i] = []string{f.Name, f.Type, req}
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Type", ""}, rows))

	if len(t.Example) > 0 {
		printTitle(w, "Example")
		_ = writeJSON(w, t.Example)
	}
}

// parseCategory validates a --category value. Empty means all.
func parseCategory(s string) (tools.Category, error) {
	cat := tools.Category(s)
	if cat == "" || slices.Contains(tools.Categories, cat) {
		return cat, nil
	}
	names := make([]string, len(tools.Categories))
	for i, c := range tools.Categories {
		names[i] = string(c)
	}
	return "", errors.New(errors.ErrCodeInvalidInput,
		"unknown category %q (one of %s)", s, strings.Join(names, ", "))
}

// lookupTool resolves a tool name, with or without the geomech_ prefix.
func lookupTool(reg *tools.Registry, name string) (tools.Tool, error) {
	if t, ok := reg.Lookup(name); ok {
		return t, nil
	}
	if t, ok := reg.Lookup(toolPrefix + name); ok {
		return t, nil
	}
	return tools.Tool{}, errors.New(errors.ErrCodeUnknownTool,
		"unknown tool %q (see \"geomech tools\")", name)
}

// completeToolNames completes tool names without their common prefix.
func completeToolNames(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range tools.Default().List("") {
		short := strings.TrimPrefix(t.Name, toolPrefix)
		if strings.HasPrefix(short, toComplete) {
			out = append(out, short+"\t"+t.Summary)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
