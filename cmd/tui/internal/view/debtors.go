package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rjcosta/brickerp/internal/report"
)

type DebtorsModel struct {
	CommonModel
	svc *report.Service

	table   table.Model
	rows    []*report.DebtorRow
	loading bool
	err     error
}

func NewDebtorsModel(svc *report.Service) DebtorsModel {
	columns := []table.Column{
		{Title: "Contract", Width: 14},
		{Title: "Client", Width: 24},
		{Title: "Outstanding", Width: 12},
		{Title: "Current", Width: 12},
		{Title: "1-30", Width: 10},
		{Title: "31-60", Width: 10},
		{Title: "61-90", Width: 10},
		{Title: "90+", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	return DebtorsModel{svc: svc, table: t, loading: true}
}

func (m DebtorsModel) Title() string     { return "Debtors Report" }
func (m DebtorsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DebtorsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DebtorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDebtorsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.rows = msg.rows
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
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DebtorsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading debtors report...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var total int64
	for _, row := range m.rows {
		total += row.Outstanding
	}

	header := fmt.Sprintf("%d debtor contracts | Total outstanding: %s", len(m.rows), FormatAmount(total))

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

func (m *DebtorsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, row := range m.rows {
		rows = append(rows, table.Row{
			row.ContractNumber,
			row.ClientName,
			FormatAmount(row.Outstanding),
			FormatAmount(row.Current),
			FormatAmount(row.Overdue30),
			FormatAmount(row.Overdue60),
			FormatAmount(row.Overdue90),
			FormatAmount(row.Overdue90Plus),
		})
	}

	m.table.SetRows(rows)
}

type loadDebtorsMsg struct {
	rows []*report.DebtorRow
	err  error
}

func (m DebtorsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rows, err := m.svc.Debtors(ctx)
		return loadDebtorsMsg{rows: rows, err: err}
	}
}
