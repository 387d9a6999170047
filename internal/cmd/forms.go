package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dingolabs/dingo/internal/core"
	"github.com/dingolabs/dingo/internal/core/catalog"
	"github.com/dingolabs/dingo/internal/output"
)

var formsCmd = &cobra.Command{
	Use:   "forms [operation]",
	Short: "List the operation forms and their fields",
	Long: `List the form of every operation, or of one operation, with field kinds,
options and defaults. The operation commands take the same fields as flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schemas := catalog.All()
		if len(args) == 1 {
			op, err := core.ParseOperation(args[0])
			if err != nil {
				return err
			}
			schemas = []catalog.FormSchema{catalog.SchemaFor(op)}
		}

		format, err := output.ParseFormat(loadConfig().Output.Format)
		if err != nil {
			return err
		}
		return writeForms(cmd.OutOrStdout(), schemas, format)
	},
}

func init() {
	rootCmd.AddCommand(formsCmd)
}

func writeForms(w io.Writer, schemas []catalog.FormSchema, format output.Format) error {
	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(schemas, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case output.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schemas); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, schema := range schemas {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, formTable(schema))
	}
	return nil
}

func formTable(schema catalog.FormSchema) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s (%s)", schema.Title, schema.Operation))
	t.AppendHeader(table.Row{"Flag", "Label", "Kind", "Required", "Options", "Default"})
	for _, field := range schema.Fields {
		required := ""
		if field.Required {
			required = "yes"
		}
		values := make([]string, len(field.Options))
		for i, opt := range field.Options {
			values[i] = opt.Value
		}
		t.AppendRow(table.Row{
			"--" + flagName(field),
			field.Label,
			string(field.Kind),
			required,
			strings.Join(values, ", "),
			field.Default,
		})
	}
	if schema.SubmitLabel != "" {
		t.AppendFooter(table.Row{"", "Submit: " + schema.SubmitLabel})
	}
	return t.Render()
}
