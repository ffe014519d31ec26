package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/dirhist/internal/dirhist"
)

const (
	// YAMLIndent is the indentation width of YAML output.
	YAMLIndent = 2
)

// PrintJSON outputs statistics in JSON format.
func PrintJSON(stats *dirhist.Stats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintYAML outputs statistics in YAML format.
func PrintYAML(stats *dirhist.Stats, writer io.Writer) error {
	enc := yaml.NewEncoder(writer)
	enc.SetIndent(YAMLIndent)

	if err := enc.Encode(stats); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return enc.Close()
}

// newTable returns a borderless table with right-aligned columns.
func newTable(colored bool, header ...any) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleDefault)
	tw.Style().Options = table.OptionsNoBordersAndSeparators
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.HeaderAlign = text.AlignRight

	if colored {
		tw.Style().Color.Header = text.Colors{text.Bold, text.FgCyan}
	}

	tw.AppendHeader(table.Row(header))
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, WidthMin: 12},
		{Number: 2, Align: text.AlignRight, WidthMin: 10},
	})

	return tw
}

// PrintTable outputs the total file count, the size histogram and the
// extension ranking, separated by blank lines.
func PrintTable(stats *dirhist.Stats, writer io.Writer, colored bool) error {
	title := color.New(color.Bold)
	if colored {
		title.EnableColor()
	} else {
		title.DisableColor()
	}

	if _, err := title.Fprintf(writer, "total file count is %d\n\n", stats.FileCount); err != nil {
		return err
	}

	sizes := newTable(colored, "size", "count")
	for _, b := range stats.Histogram {
		sizes.AppendRow(table.Row{b.Label, b.Count})
	}

	if _, err := fmt.Fprintf(writer, "%s\n\n", sizes.Render()); err != nil {
		return err
	}

	exts := newTable(colored, "extension", fmt.Sprintf("count (top %d list)", stats.TopN))
	for _, e := range stats.TopExtensions {
		exts.AppendRow(table.Row{e.Extension, e.Count})
	}

	if _, err := fmt.Fprintln(writer, exts.Render()); err != nil {
		return err
	}

	return nil
}
