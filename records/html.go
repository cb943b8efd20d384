package records

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"hermannm.dev/wrap"
)

// FromHTMLTable extracts records from the first <table> element of an HTML
// document or fragment. Header cells (<th>, or the first row's <td>s) name
// the columns; every following <tr> becomes one Record. Missing trailing
// cells are left out of the record; surplus cells are dropped.
func FromHTMLTable(input io.Reader) ([]Record, error) {
	root, err := html.Parse(input)
	if err != nil {
		return nil, wrap.Error(err, "failed to parse HTML input")
	}
	table := findElement(root, "table")
	if table == nil {
		return nil, ErrNoHeader
	}
	rows := collectRows(table)
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		record := make(Record, len(header))
		for i, name := range header {
			if i < len(cells) {
				record[name] = cells[i]
			}
		}
		records = append(records, record)
	}
	tracer().Debugf("read %d HTML table records with %d columns", len(records), len(header))
	return records, nil
}

// findElement walks the node tree depth-first for the first element with the
// given tag.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectRows flattens a table's <tr> elements to their cell texts.
func collectRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, collectCells(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func collectCells(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(innerText(c)))
		}
	}
	return cells
}

// innerText concatenates the text content of a node's subtree.
func innerText(n *html.Node) string {
	var sb strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
