package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/flowtune/flowtune/pkg/graphio"
	"github.com/flowtune/flowtune/pkg/pipeline"
	"github.com/flowtune/flowtune/pkg/workflow/optimize"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing optimizations.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		noCache bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [workflow.json]",
		Short: "Browse the optimizations applied to a workflow",
		Long: `Browse the optimizations applied to a workflow.

The workflow is optimized (reusing the cache when possible) and the
applied transformations are shown in an interactive browser. Use --plain
to print a static table instead, e.g. when piping output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], noCache, plain)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a static table instead of the interactive browser")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, noCache, plain bool) error {
	wire, err := graphio.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load workflow %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, wire, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Logger:  c.Logger,
	})
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	if len(result.Records) == 0 {
		printInfo("No optimizations applied; the workflow is already optimal")
		return nil
	}

	if plain {
		fmt.Println(recordTable(result.Records))
		return nil
	}

	model := NewRecordListModel(result.Records)
	prog := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return nil
}

// =============================================================================
// RecordListModel - Interactive optimization browser
// =============================================================================

// RecordListModel is the bubbletea model for browsing optimization records.
type RecordListModel struct {
	Records []optimize.Record
	Cursor  int
	Height  int
	Offset  int
}

// NewRecordListModel creates a new record list model.
func NewRecordListModel(records []optimize.Record) RecordListModel {
	return RecordListModel{
		Records: records,
		Height:  15,
	}
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RecordListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Applied Optimizations"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Records) {
		end = len(m.Records)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Records[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			string(r.Category),
			string(r.Impact),
			truncate(r.Description, 60),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Category", "Impact", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(impactColor(m.Records[m.Offset+row].Impact))
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	// Detail pane for the selected record.
	selected := m.Records[m.Cursor]
	b.WriteString(StyleValue.Render(selected.Description))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("steps: " + strings.Join(selected.Nodes, ", ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Records))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// recordTable renders optimization records as a static table.
func recordTable(records []optimize.Record) string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			string(r.Category),
			string(r.Impact),
			r.Description,
			strings.Join(r.Nodes, ", "),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Impact", "Description", "Steps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(impactColor(records[row].Impact))
		}).
		Render()
}

func impactColor(impact optimize.Impact) lipgloss.Color {
	switch impact {
	case optimize.ImpactCompliance:
		return colorYellow
	case optimize.ImpactPerformance:
		return colorGreen
	default:
		return colorWhite
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
