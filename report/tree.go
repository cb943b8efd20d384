package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/cubes"
)

// Tree renders one dimension's index hierarchy with the aggregated value next
// to every node, children indented below (or above, for children-first
// nodes) their parent. Remaining free dimensions are read at their totals.
func Tree[T comparable, V any](w io.Writer, cube *cubes.Cube[T, V], dim cubes.Position, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	dimension, err := cube.FreeDimension(dim)
	if err != nil {
		return err
	}
	caption := config.Title
	if caption == "" {
		caption = fmt.Sprintf("%s by %s", cube.AggregationKind(), dimension.Title())
	}
	if _, err := fmt.Fprintln(w, caption); err != nil {
		return err
	}
	for _, root := range dimension.Roots() {
		if err := treeNode(w, cube, dim, root, 0, config); err != nil {
			return err
		}
	}
	return nil
}

func treeNode[T comparable, V any](w io.Writer, cube *cubes.Cube[T, V], dim cubes.Position, def *cubes.IndexDef[T], depth int, config *Config) error {
	line := func() error {
		slice, err := cube.SliceDim(dim, def.Index())
		if err != nil {
			return err
		}
		value, err := slice.GetValue()
		if err != nil {
			return err
		}
		label := strings.Repeat("  ", depth) + def.Title()
		if config.Colored && def.Index().IsTotal() {
			label = totalColor.Sprint(label)
		}
		_, err = fmt.Fprintf(w, "%s: %v\n", label, value)
		return err
	}
	children := func() error {
		for _, child := range def.Children() {
			if err := treeNode(w, cube, dim, child, depth+1, config); err != nil {
				return err
			}
		}
		return nil
	}
	if def.IsChildrenFirst() {
		if err := children(); err != nil {
			return err
		}
		return line()
	}
	if err := line(); err != nil {
		return err
	}
	return children()
}
