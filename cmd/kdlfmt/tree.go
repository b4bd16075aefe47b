package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kdl-go/kdl"
)

func newTreeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file.kdl>",
		Short: "Interactively inspect a parsed KDL document",
		Long: `tree parses a KDL document and walks it with this package's navigation API:
arrow keys move the cursor, enter toggles a node's children, '/' filters by
name using deep descendant search, and 'q' quits. When stdout is not a
terminal, or --plain is given, it prints a flat indented dump instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runTree(cfg, path)
		},
	}
	return cmd
}

func runTree(cfg *config, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	doc, err := kdl.Parse(string(data))
	if err != nil {
		return err
	}

	if cfg.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		printPlainTree(os.Stdout, doc)
		return nil
	}

	p := tea.NewProgram(newTreeModel(doc))
	_, err = p.Run()
	return err
}

// printPlainTree writes a flat, indented, non-interactive dump of doc: a
// fallback for piped output and the --plain flag, distinct from the
// canonical Stringify form (this one shows argument/property values
// inline per node for quick scanning, not a re-parseable text).
func printPlainTree(w io.Writer, doc *kdl.Document) {
	var walk func(d *kdl.Document, depth int)
	walk = func(d *kdl.Document, depth int) {
		for _, n := range d.Nodes {
			fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describeNode(n))
			if n.Children != nil {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(doc, 0)
}

func describeNode(n *kdl.Node) string {
	var b strings.Builder
	b.WriteString(n.Name)
	for _, a := range n.Arguments {
		b.WriteByte(' ')
		b.WriteString(valueText(a.Value))
	}
	for _, p := range n.Properties {
		fmt.Fprintf(&b, " %s=%s", p.Key, valueText(p.Value))
	}
	return b.String()
}

func valueText(v kdl.Value) string {
	switch v.Kind() {
	case kdl.KindString:
		s, _ := v.String()
		return fmt.Sprintf("%q", s)
	case kdl.KindInt:
		i, _ := v.Int()
		return i.String()
	case kdl.KindFloat:
		f, _ := v.Float()
		return fmt.Sprintf("%v", f)
	case kdl.KindBool:
		b, _ := v.Bool()
		if b {
			return "#true"
		}
		return "#false"
	default:
		return "#null"
	}
}

// treeRow is one visible line of the interactive inspector: a node at a
// given depth, plus whether it has children and whether they are
// currently expanded.
type treeRow struct {
	node     *kdl.Node
	depth    int
	hasKids  bool
	expanded bool
}

type treeModel struct {
	doc      *kdl.Document
	expanded map[*kdl.Node]bool
	rows     []treeRow
	cursor   int
	height   int

	filtering bool
	filter    string
	matches   map[*kdl.Node]bool
}

func newTreeModel(doc *kdl.Document) *treeModel {
	m := &treeModel{doc: doc, expanded: map[*kdl.Node]bool{}, height: 24}
	m.rebuild()
	return m
}

func (m *treeModel) rebuild() {
	m.rows = m.rows[:0]
	var walk func(d *kdl.Document, depth int)
	walk = func(d *kdl.Document, depth int) {
		for _, n := range d.Nodes {
			hasKids := n.Children != nil && len(n.Children.Nodes) > 0
			expanded := m.expanded[n]
			m.rows = append(m.rows, treeRow{node: n, depth: depth, hasKids: hasKids, expanded: expanded})
			if hasKids && expanded {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(m.doc, 0)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *treeModel) Init() tea.Cmd { return nil }

func (m *treeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", " ":
			if m.cursor < len(m.rows) {
				row := m.rows[m.cursor]
				if row.hasKids {
					m.expanded[row.node] = !m.expanded[row.node]
					m.rebuild()
				}
			}
		case "/":
			m.filtering = true
			m.filter = ""
		}
	}
	return m, nil
}

// updateFilter handles key presses while the '/' filter prompt is open.
// It uses the document's deep-navigation primitive to find every node
// named by the typed text, anywhere in the tree, and records them in
// m.matches for View to highlight.
func (m *treeModel) updateFilter(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		found := m.doc.DescendantsNamed(m.filter)
		matches := make(map[*kdl.Node]bool, found.Len())
		for _, n := range found.Nodes() {
			matches[n] = true
		}
		m.matches = matches
	case "esc":
		m.filtering = false
		m.matches = nil
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
		}
	default:
		if len(msg.String()) == 1 {
			m.filter += msg.String()
		}
	}
	return m, nil
}

var (
	styleGuide    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleAnnot    = lipgloss.NewStyle().Foreground(lipgloss.Color("142"))
	styleName     = lipgloss.NewStyle().Bold(true)
	styleSelected = lipgloss.NewStyle().Reverse(true)
	styleMatch    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	stylePrompt   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

func (m *treeModel) View() tea.View {
	var b strings.Builder
	for i, row := range m.rows {
		line := styleGuide.Render(strings.Repeat("  ", row.depth))
		if row.node.Annotation.HasAnnotation() {
			line += styleAnnot.Render("(" + row.node.Annotation.Name + ")")
		}
		name := styleName.Render(row.node.Name)
		if m.matches[row.node] {
			name = styleMatch.Render(row.node.Name)
		}
		line += name
		if row.hasKids {
			if row.expanded {
				line += styleGuide.Render(" [-]")
			} else {
				line += styleGuide.Render(" [+]")
			}
		}
		for _, a := range row.node.Arguments {
			line += " " + valueText(a.Value)
		}
		if i == m.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if m.filtering {
		b.WriteString(stylePrompt.Render("/" + m.filter))
	}
	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}
