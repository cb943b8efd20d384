package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/npillmayer/cubes"
	"golang.org/x/term"
)

// Config controls table and tree rendering.
type Config struct {
	// Title overrides the default caption derived from the cube's
	// aggregation kind and the rendered dimensions' titles.
	Title string
	// LineWidth caps the rendered width in characters; 0 picks the terminal
	// width if stdout is interactive, 65 otherwise.
	LineWidth int
	// Colored emphasizes header cells and total rows/columns. Defaults to
	// false so that piped output stays plain.
	Colored bool
}

// ConfigFromTerminal is a simple helper for creating a rendering Config with
// a line width matching the current terminal.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil || w < 20 {
			config.LineWidth = 65
		} else {
			config.LineWidth = w
		}
	} else {
		config.LineWidth = 65
	}
	tracer().Infof("setting report line width to %d en", config.LineWidth)
	return config
}

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	totalColor  = color.New(color.Bold)
)

// Table renders a two-axis breakdown of a cube as a fixed-width table: one
// row per index of the rows dimension, one column per index of the cols
// dimension, both in declared enumeration order. Remaining free dimensions
// are read at their totals. Positions resolve against the cube's current free
// dimensions.
func Table[T comparable, V any](w io.Writer, cube *cubes.Cube[T, V], rows, cols cubes.Position, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	rowDim, err := cube.FreeDimension(rows)
	if err != nil {
		return err
	}
	colDim, err := cube.FreeDimension(cols)
	if err != nil {
		return err
	}
	rowDefs := rowDim.Indexes()
	colDefs := colDim.Indexes()

	// cell texts, row-major, with a leading header row and header column
	grid := make([][]string, 0, len(rowDefs)+1)
	header := make([]string, 0, len(colDefs)+1)
	header = append(header, rowDim.Title())
	for _, def := range colDefs {
		header = append(header, def.Title())
	}
	grid = append(grid, header)
	for _, rowDef := range rowDefs {
		line := make([]string, 0, len(colDefs)+1)
		line = append(line, rowDef.Title())
		for _, colDef := range colDefs {
			slice, err := cube.SliceDims(
				cubes.Binding[T]{Dim: rows, Index: rowDef.Index()},
				cubes.Binding[T]{Dim: cols, Index: colDef.Index()},
			)
			if err != nil {
				return err
			}
			value, err := slice.GetValue()
			if err != nil {
				return err
			}
			line = append(line, fmt.Sprintf("%v", value))
		}
		grid = append(grid, line)
	}

	widths := columnWidths(grid)
	caption := config.Title
	if caption == "" {
		caption = fmt.Sprintf("%s by %s / %s", cube.AggregationKind(), rowDim.Title(), colDim.Title())
	}
	if _, err := fmt.Fprintln(w, caption); err != nil {
		return err
	}
	for r, line := range grid {
		var sb strings.Builder
		for col, cell := range line {
			text := pad(cell, widths[col], col > 0)
			if config.Colored {
				switch {
				case r == 0 || col == 0:
					text = headerColor.Sprint(text)
				case rowDefs[r-1].Index().IsTotal() || colDefs[col-1].Index().IsTotal():
					text = totalColor.Sprint(text)
				}
			}
			if col > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(text)
		}
		out := sb.String()
		// escape codes make character counting meaningless, so colored lines
		// are never clipped
		if config.LineWidth > 0 && !config.Colored {
			if runes := []rune(out); len(runes) > config.LineWidth {
				out = string(runes[:config.LineWidth])
			}
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths returns the maximum cell width per column, in characters (the
// total label Σ is a multi-byte rune).
func columnWidths(grid [][]string) []int {
	widths := make([]int, len(grid[0]))
	for _, line := range grid {
		for col, cell := range line {
			if n := utf8.RuneCountInString(cell); n > widths[col] {
				widths[col] = n
			}
		}
	}
	return widths
}

// pad right-aligns value cells and left-aligns label cells. Padding happens
// before coloring so that escape codes do not skew the layout.
func pad(text string, width int, rightAlign bool) string {
	fill := strings.Repeat(" ", max(0, width-utf8.RuneCountInString(text)))
	if rightAlign {
		return fill + text
	}
	return text + fill
}
