package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geomech/pkg/errors"
	"github.com/matzehuels/geomech/pkg/tools"
)

// runOptions holds the flags of "geomech run".
type runOptions struct {
	file    string
	sets    []string
	noCache bool
	asJSON  bool
}

// runCommand runs one tool through the cached, archived runner.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [tool]",
		Short: "Run one calculation",
		Long: `Run one calculation on a JSON request.

The request is read from a file (-f, "-" for stdin) and individual fields
can be set or overridden with --set key=value. Numbers, booleans and JSON
arrays are recognised; anything else is a string. Without a tool name an
interactive picker is shown.

Results are cached; --no-cache forces a fresh computation.`,
		Example: `  geomech run vertical_stress --set depth=10000
  geomech run geomech_mohr_coulomb -f request.json
  echo '{"depth": 9000}' | geomech run vertical_stress -f - --json`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeToolNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			reg := tools.Default()

			var t tools.Tool
			if len(args) == 1 {
				var err error
				if t, err = lookupTool(reg, args[0]); err != nil {
					return err
				}
			} else {
				picked, err := pickTool(cmd, reg.List(""))
				if err != nil || picked == nil {
					return err
				}
				t = *picked
			}

			input, err := buildInput(cmd.InOrStdin(), opts.file, opts.sets)
			if err != nil {
				return err
			}

			runner, closeFn, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer closeFn()

			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Run(ctx, t.Name, input, tools.RunOptions{NoCache: opts.noCache})
			if err != nil {
				return err
			}
			prog.done("tool finished", "tool", t.Name, "run", res.RunID, "cached", res.Cached)

			if opts.asJSON {
				return writeJSON(out, res.Output)
			}
			rows, err := flattenJSON(res.Output)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, StyleTitle.Render(t.Name))
			printKeyValues(out, rows)
			fmt.Fprintln(out)
			printRunStatus(out, res.RunID, res.Cached, res.Duration)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "JSON request file (\"-\" for stdin)")
	flags.StringArrayVarP(&opts.sets, "set", "s", nil, "set a request field (key=value, repeatable)")
	flags.BoolVar(&opts.noCache, "no-cache", false, "skip the result cache")
	flags.BoolVar(&opts.asJSON, "json", false, "print the raw JSON result")

	return cmd
}

// buildInput merges the request file and --set overrides into one JSON
// object.
func buildInput(stdin io.Reader, file string, sets []string) ([]byte, error) {
	req := map[string]any{}

	if file != "" {
		var data []byte
		var err error
		if file == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request")
		}
		if len(bytes.TrimSpace(data)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.UseNumber()
			if err := dec.Decode(&req); err != nil || req == nil {
				if err == nil {
					err = fmt.Errorf("got null")
				}
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request must be a JSON object")
			}
		}
	}

	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--set %q: want key=value", s)
		}
		req[key] = parseSetValue(value)
	}

	out, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode request")
	}
	return out, nil
}

// parseSetValue interprets a --set value as a number, boolean, null, JSON
// array or object, falling back to a string.
func parseSetValue(s string) any {
	v := strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "{") {
		var raw json.RawMessage
		if json.Unmarshal([]byte(v), &raw) == nil {
			return raw
		}
	}
	return s
}

// pickTool shows the interactive picker. It returns nil when the user quits
// without choosing.
func pickTool(cmd *cobra.Command, list []tools.Tool) (*tools.Tool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tool given (see \"geomech tools\")")
	}
	final, err := tea.NewProgram(NewToolPickerModel(list),
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.ErrOrStderr()),
	).Run()
	if err != nil {
		return nil, fmt.Errorf("tool picker: %w", err)
	}
	m, ok := final.(ToolPickerModel)
	if !ok {
		return nil, nil
	}
	return m.Selected, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
