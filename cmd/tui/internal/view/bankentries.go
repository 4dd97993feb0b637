package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rjcosta/brickerp/internal/bankimport"
)

type BankEntriesModel struct {
	CommonModel
	svc *bankimport.Service

	table   table.Model
	entries []*bankimport.Entry

	// Cycles all / unposted / posted.
	postedFilterIdx int

	filter  bankimport.ListFilter
	loading bool
	err     error
}

func NewBankEntriesModel(svc *bankimport.Service) BankEntriesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Direction", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Reference", Width: 36},
		{Title: "Bank", Width: 12},
		{Title: "Posted", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return BankEntriesModel{svc: svc, table: t, loading: true}
}

func (m BankEntriesModel) Title() string     { return "Bank Entries" }
func (m BankEntriesModel) ShortHelp() string { return "Esc: back | p: posted filter | r: refresh" }

func (m BankEntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BankEntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBankEntriesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.entries = msg.entries
		m.err = nil
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "p":
			m.postedFilterIdx = (m.postedFilterIdx + 1) % 3
			m.applyFilter()

			return m, m.loadCmd()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BankEntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bank entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	labels := []string{"All", "Unposted", "Posted"}

	header := fmt.Sprintf("Filter: [p] Posted: %s", activeStyle(labels[m.postedFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *BankEntriesModel) applyFilter() {
	switch m.postedFilterIdx {
	case 1:
		m.filter.Posted = new(false)
	case 2:
		m.filter.Posted = new(true)
	default:
		m.filter.Posted = nil
	}
}

func (m *BankEntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		posted := "no"
		if e.Posted {
			posted = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Direction),
			FormatAmount(e.Amount),
			e.Reference,
			e.Bank,
			posted,
		})
	}

	m.table.SetRows(rows)
}

type loadBankEntriesMsg struct {
	entries []*bankimport.Entry
	err     error
}

func (m BankEntriesModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.svc.List(ctx, filter)
		return loadBankEntriesMsg{entries: entries, err: err}
	}
}
