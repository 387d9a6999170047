package cmd

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dingolabs/dingo/internal/api"
	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/core/pipeline"
	"github.com/dingolabs/dingo/internal/core/result"
	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/output"
)

func init() {
	for _, schema := range catalog.All() {
		rootCmd.AddCommand(newOperationCommand(schema))
	}
}

// newOperationCommand builds a one-shot command whose flags mirror the form
// fields of schema.
func newOperationCommand(schema catalog.FormSchema) *cobra.Command {
	op := schema.Operation
	cmd := &cobra.Command{
		Use:   string(op),
		Short: schema.Title,
		Long: fmt.Sprintf(`%s

Submits the %q form to the backend and prints the rendered result.
Flags mirror the console form fields.`, schema.Title, op),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			values, err := valuesFromFlags(cmd, schema)
			if err != nil {
				return err
			}

			resp, err := pipeline.New(newClient(cfg)).Submit(cmd.Context(), op, values, nil)
			if err != nil {
				ExitWithOperationError(err)
				return nil
			}

			raw, _ := cmd.Flags().GetBool("raw")
			format, err := output.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}
			target, err := resultTargetFrom(cmd)
			if err != nil {
				return err
			}
			return writeOperationResult(cmd.OutOrStdout(), op, resp, format, raw, target)
		},
	}

	addFieldFlags(cmd, schema)
	cmd.Flags().Bool("raw", false, "print the backend JSON body unmodified")
	addResultTargetFlags(cmd)
	return cmd
}

func flagName(field catalog.FieldSpec) string {
	return strings.ReplaceAll(field.Name, "_", "-")
}

func flagUsage(field catalog.FieldSpec) string {
	usage := field.Label
	if field.Help != "" {
		usage = field.Help
	}
	if len(field.Options) > 0 {
		values := make([]string, len(field.Options))
		for i, opt := range field.Options {
			values[i] = opt.Value
		}
		usage += fmt.Sprintf(" [%s]", strings.Join(values, "|"))
	}
	if field.Required {
		usage += " (required)"
	}
	return usage
}

// addFieldFlags registers one flag per form field. Multiselect fields take a
// repeatable or comma separated list.
func addFieldFlags(cmd *cobra.Command, schema catalog.FormSchema) {
	for _, field := range schema.Fields {
		name := flagName(field)
		if field.MultiValued() {
			var defaults []string
			if field.Default != "" {
				defaults = strings.Split(field.Default, ",")
			}
			cmd.Flags().StringSlice(name, defaults, flagUsage(field))
			continue
		}
		cmd.Flags().String(name, field.Default, flagUsage(field))
	}
}

// valuesFromFlags collects the form values the flags describe. Unset fields
// without a default are left out so validation reports them.
func valuesFromFlags(cmd *cobra.Command, schema catalog.FormSchema) (url.Values, error) {
	values := url.Values{}
	for _, field := range schema.Fields {
		name := flagName(field)
		if field.MultiValued() {
			selected, err := cmd.Flags().GetStringSlice(name)
			if err != nil {
				return nil, err
			}
			for _, v := range selected {
				if v = strings.TrimSpace(v); v != "" {
					values.Add(field.Name, v)
				}
			}
			continue
		}

		value, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, err
		}
		if value != "" {
			values.Set(field.Name, value)
		}
	}
	return values, nil
}

func writeOperationResult(stdout io.Writer, op core.Operation, resp *api.Response, format output.Format, raw bool, target resultTarget) error {
	view := result.RenderBody(op, resp.Body)

	var rendered string
	if raw {
		rendered = output.IndentJSON(resp.Body) + "\n"
		format = output.FormatJSON
	} else {
		var err error
		rendered, err = output.Render(format, view)
		if err != nil {
			return err
		}
		rendered += "\n"
	}

	stem := string(op)
	if taskID, ok := view.HeaderValue("Task ID"); ok && taskID != "Unknown" {
		stem += "-" + taskID
	}
	path := target.path(stem, format)
	w, closeFn, err := createResultFile(path, stdout)
	if err != nil {
		return err
	}
	if err := writeAndClose(w, closeFn, rendered); err != nil {
		return err
	}
	if path != "" && observability.CLILogger != nil {
		observability.CLILogger.Info("Wrote result", zap.String("path", path))
	}
	return nil
}

// writeAndClose writes rendered and closes the target. A write error wins
// over the close error.
func writeAndClose(w io.Writer, closeFn func() error, rendered string) error {
	_, werr := io.WriteString(w, rendered)
	cerr := closeFn()
	if werr != nil {
		return werr
	}
	return cerr
}
