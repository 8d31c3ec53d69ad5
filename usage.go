package funcli

import (
	"fmt"
	"strings"

	"github.com/funcli/funcli/pkg/textutil"
)

const (
	helpWidth    = 80
	columnUnit   = 6
	tableIndent  = "  "
	magicUsage   = "[MAGIC]"
	argUsage     = "[POSITIONAL] [KEYWORD]"
	commandUsage = "<COMMAND> ..."
)

// table is one titled section of help output: a name, and rows of cells.
type table struct {
	title string
	rows  [][]string
}

// commandUsageText renders the full help for a single bound command.
func commandUsageText(c *Command) string {
	var b strings.Builder
	writeUsageLine(&b, c.Name, magicUsage+" "+argUsage)
	writeParagraph(&b, c.brief())
	writeParagraph(&b, c.detail())
	// parameter tables share a column layout; the magic table has its own
	writeTables(&b, paramTables(c))
	writeTables(&b, []table{magicTable()})
	return b.String()
}

// appUsageText renders the help for a command app: the command listing plus
// the magic flags.
func appUsageText(a *CommandApp) string {
	var b strings.Builder
	writeUsageLine(&b, a.Name, magicUsage+" "+commandUsage)
	writeParagraph(&b, a.Brief)
	writeParagraph(&b, a.Detail)

	commands := table{title: "Commands"}
	for _, c := range a.commands {
		commands.rows = append(commands.rows, []string{
			strings.Join(append([]string{c.Name}, c.Aliases...), ", "),
			c.brief(),
		})
	}
	writeTables(&b, []table{commands})
	writeTables(&b, []table{magicTable()})
	return b.String()
}

func writeUsageLine(b *strings.Builder, name, usage string) {
	fmt.Fprintf(b, "Usage: %s %s\n\n", name, usage)
}

// writeParagraph wraps text at the help width. Blank lines separate
// paragraphs; each paragraph is wrapped independently.
func writeParagraph(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	for _, para := range splitParagraphs(text) {
		for _, line := range textutil.Wrap(para, helpWidth) {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func splitParagraphs(text string) []string {
	var paras []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paras = append(paras, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimSpace(line))
	}
	flush()
	return paras
}

// paramTables groups a command's parameters into one table per kind, in
// kind order. Empty tables are dropped at render time.
func paramTables(c *Command) []table {
	kinds := []ParamKind{Positional, PositionalOrKeyword, VarPositional, KeywordOnly, VarKeyword}
	var tables []table
	for _, kind := range kinds {
		t := table{title: kind.String()}
		for _, p := range c.Params {
			if p.Kind != kind {
				continue
			}
			t.rows = append(t.rows, []string{
				joinParamNames(p),
				typeName(p),
				p.Help,
				defaultCell(p),
			})
		}
		tables = append(tables, t)
	}
	return tables
}

func magicTable() table {
	return table{
		title: "Magic",
		rows:  [][]string{{"--help, -h", "show this help message and exit"}},
	}
}

// joinParamNames renders a parameter's names: positional kinds plain,
// keyword-capable kinds as flags.
func joinParamNames(p *Param) string {
	names := p.names()
	if p.Kind == Positional || p.Kind == VarPositional {
		return strings.Join(names, ", ")
	}
	flags := make([]string, len(names))
	for i, name := range names {
		flags[i] = toFlag(name)
	}
	return strings.Join(flags, ", ")
}

func toFlag(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

func typeName(p *Param) string {
	return p.typ.String()
}

// defaultCell renders the default column: "[required]" for parameters with
// no default, an empty cell for variadics, and a literal otherwise.
func defaultCell(p *Param) string {
	if p.Kind == VarPositional || p.Kind == VarKeyword {
		return ""
	}
	if p.required() {
		return "[required]"
	}
	if s, ok := p.Default.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", p.Default)
}

// writeTables renders the non-empty tables with a shared column layout:
// each column is as wide as its widest cell across every table, rounded up
// to a multiple of the column unit.
func writeTables(b *strings.Builder, tables []table) {
	var widths []int
	for _, t := range tables {
		for _, row := range t.rows {
			for i, cell := range row {
				if i >= len(widths) {
					widths = append(widths, 0)
				}
				if len(cell) > widths[i] {
					widths[i] = len(cell)
				}
			}
		}
	}
	for i, w := range widths {
		widths[i] = ceilToMultiple(w, columnUnit)
	}

	for _, t := range tables {
		if len(t.rows) == 0 {
			continue
		}
		b.WriteString(t.title)
		b.WriteString(":\n")
		for _, row := range t.rows {
			var line strings.Builder
			for i, cell := range row {
				line.WriteString(tableIndent)
				line.WriteString(pad(cell, widths[i]))
			}
			b.WriteString(strings.TrimRight(line.String(), " "))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func ceilToMultiple(n, mul int) int {
	d := mul - 1
	return (n + d) / mul * mul
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
