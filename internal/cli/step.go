package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Andre-Pham/FamApp-sub000/pkg/family"
	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/layout"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
)

// stepCommand creates the step command for watching a layout build up.
func (c *CLI) stepCommand() *cobra.Command {
	var (
		flags layoutFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "step [family.yaml]",
		Short: "Step through a layout one placement at a time",
		Long: `Step through a layout one placement at a time.

Each step re-runs the engine with a larger step limit, so the view shows
exactly what a layout stopped after N people looks like: who was placed last,
where everyone stands, and how many connectors cross.

Use --plain to print every step instead of opening the interactive view.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFamilyFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStep(cmd.Context(), args[0], flags.options(), plain, cmd.OutOrStdout())
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print every step instead of opening the interactive view")

	return cmd
}

func (c *CLI) runStep(ctx context.Context, input string, opts pipeline.Options, plain bool, w io.Writer) error {
	f, err := loadFamily(input)
	if err != nil {
		return fmt.Errorf("load family %s: %w", input, err)
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	g, root, err := c.newRunner(true).Load(ctx, f, opts)
	if err != nil {
		return err
	}

	s, err := newStepper(g, root, opts)
	if err != nil {
		return err
	}
	// Start where the flag asked, or at the end.
	start := s.total
	if opts.StepLimit > 0 {
		start = min(opts.StepLimit, s.total)
	}

	if plain {
		return s.printAll(w)
	}

	p := tea.NewProgram(newStepModel(s, start), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// =============================================================================
// Stepper
// =============================================================================

// stepper computes and memoizes the layout after each number of placements.
type stepper struct {
	g     *family.Graph
	root  string
	opts  []layout.Option
	total int
	docs  map[int]graph.LayoutDocument
}

func newStepper(g *family.Graph, root string, opts pipeline.Options) (*stepper, error) {
	s := &stepper{
		g:    g,
		root: root,
		opts: []layout.Option{layout.WithPadding(opts.Padding, opts.CouplePadding)},
		docs: make(map[int]graph.LayoutDocument),
	}
	full, err := layout.Compute(g, root, s.opts...)
	if err != nil {
		return nil, err
	}
	s.total = len(full.People)
	s.docs[s.total] = graph.FromResult(full)
	return s, nil
}

// at returns the layout after n placements.
func (s *stepper) at(n int) (graph.LayoutDocument, error) {
	n = max(0, min(n, s.total))
	if doc, ok := s.docs[n]; ok {
		return doc, nil
	}
	opts := append(append([]layout.Option(nil), s.opts...), layout.WithStepLimit(n))
	res, err := layout.Compute(s.g, s.root, opts...)
	if err != nil {
		return graph.LayoutDocument{}, err
	}
	doc := graph.FromResult(res)
	s.docs[n] = doc
	return doc, nil
}

// printAll writes one summary line per step.
func (s *stepper) printAll(w io.Writer) error {
	for n := 1; n <= s.total; n++ {
		doc, err := s.at(n)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, stepSummary(doc, n))
	}
	return nil
}

// stepSummary describes the person placed at step n and the layout's conflicts.
func stepSummary(doc graph.LayoutDocument, n int) string {
	if n == 0 || n > len(doc.People) {
		return fmt.Sprintf("step %d: nobody placed", n)
	}
	p := doc.People[n-1]
	return fmt.Sprintf("step %d: %s at (%g, %g) crossings=%d overlaps=%d",
		n, p.Label(), p.X, p.Y, doc.Conflicts.Connection, doc.Conflicts.Position)
}

// =============================================================================
// Interactive View
// =============================================================================

type stepKeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	First key.Binding
	Last  key.Binding
	Quit  key.Binding
}

func (k stepKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.First, k.Last, k.Quit}
}

func (k stepKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var stepKeys = stepKeyMap{
	Next:  key.NewBinding(key.WithKeys("right", "l", "n", " "), key.WithHelp("→/n", "next")),
	Prev:  key.NewBinding(key.WithKeys("left", "h", "p"), key.WithHelp("←/p", "previous")),
	First: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
	Last:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

type stepModel struct {
	s        *stepper
	step     int
	doc      graph.LayoutDocument
	err      error
	help     help.Model
	viewport viewport.Model
	ready    bool
}

func newStepModel(s *stepper, start int) stepModel {
	m := stepModel{s: s, help: help.New()}
	m.goTo(start)
	return m
}

func (m *stepModel) goTo(n int) {
	m.step = max(0, min(n, m.s.total))
	m.doc, m.err = m.s.at(m.step)
	if m.ready {
		m.viewport.SetContent(positionsTable(m.doc.People))
	}
}

func (m stepModel) Init() tea.Cmd { return nil }

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-6, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width, m.viewport.Height = msg.Width, height
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(positionsTable(m.doc.People))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, stepKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, stepKeys.Next):
			m.goTo(m.step + 1)
			return m, nil
		case key.Matches(msg, stepKeys.Prev):
			m.goTo(m.step - 1)
			return m, nil
		case key.Matches(msg, stepKeys.First):
			m.goTo(0)
			return m, nil
		case key.Matches(msg, stepKeys.Last):
			m.goTo(m.s.total)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m stepModel) View() string {
	var b strings.Builder
	title := fmt.Sprintf("%s  step %d/%d", m.s.root, m.step, m.s.total)
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	} else {
		b.WriteString(StyleDim.Render(stepSummary(m.doc, m.step)))
	}
	b.WriteString("\n\n")
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(positionsTable(m.doc.People))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(stepKeys))
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}
