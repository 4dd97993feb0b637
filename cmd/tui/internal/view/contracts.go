package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rjcosta/brickerp/internal/contract"
)

type contractsState int

const (
	contractsStateBrowse contractsState = iota
	contractsStateInstallments
	contractsStatePay
)

type ContractsModel struct {
	CommonModel
	svc *contract.Service

	state contractsState

	table        table.Model
	contracts    []*contract.Contract
	installTable table.Model
	installments []*contract.Installment
	selected     *contract.Contract

	form       *huh.Form
	formAmount string

	loading bool
	err     error
	status  string
}

func NewContractsModel(svc *contract.Service) ContractsModel {
	columns := []table.Column{
		{Title: "Number", Width: 14},
		{Title: "Client", Width: 24},
		{Title: "Total", Width: 12},
		{Title: "Remaining", Width: 12},
		{Title: "Months", Width: 6},
		{Title: "Plan", Width: 10},
		{Title: "Start", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(tableStyles())

	it := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Due", Width: 12},
			{Title: "Amount", Width: 12},
			{Title: "Paid", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "Paid At", Width: 12},
		}),
		table.WithFocused(false),
		table.WithHeight(15),
	)
	it.SetStyles(tableStyles())

	return ContractsModel{
		svc:          svc,
		table:        t,
		installTable: it,
	}
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return s
}

func (m ContractsModel) Title() string { return "Contracts" }
func (m ContractsModel) ShortHelp() string {
	switch m.state {
	case contractsStateInstallments:
		return "Esc: back | g: generate schedule | p: record payment | r: refresh"
	case contractsStatePay:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | Enter: installments | r: refresh"
}

func (m ContractsModel) Init() tea.Cmd {
	return m.loadContractsCmd()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContractsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.contracts = msg.contracts
		m.err = nil
		m.refreshContractsTable()

		return m, nil

	case loadInstallmentsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.installments = msg.installments
		m.err = nil
		m.refreshInstallmentsTable()

		return m, nil

	case generateMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Generate failed: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Generated %d installments", msg.count)

		return m, m.loadInstallmentsCmd()

	case payMsg:
		m.state = contractsStateInstallments
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Payment failed: %v", msg.err)
			return m, nil
		}

		m.status = "Payment recorded"

		return m, m.loadInstallmentsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		m.installTable.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case contractsStateBrowse:
		return m.updateBrowse(msg)
	case contractsStateInstallments:
		return m.updateInstallments(msg)
	case contractsStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m ContractsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadContractsCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.contracts) {
				return m, nil
			}

			m.selected = m.contracts[idx]
			m.state = contractsStateInstallments
			m.status = ""
			m.table.Blur()
			m.installTable.Focus()

			return m, m.loadInstallmentsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ContractsModel) updateInstallments(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.state = contractsStateBrowse
			m.selected = nil
			m.status = ""
			m.installTable.Blur()
			m.table.Focus()

			return m, nil
		case "r":
			return m, m.loadInstallmentsCmd()
		case "g":
			return m, m.generateCmd()
		case "p":
			return m.enterPayMode()
		}
	}

	var cmd tea.Cmd
	m.installTable, cmd = m.installTable.Update(msg)

	return m, cmd
}

func (m ContractsModel) enterPayMode() (tea.Model, tea.Cmd) {
	idx := m.installTable.Cursor()
	if idx < 0 || idx >= len(m.installments) {
		return m, nil
	}

	in := m.installments[idx]
	m.formAmount = FormatAmount(in.Amount - in.PaidAmount)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Payment amount").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := parseAmount(s); err != nil {
						return err
					}
					return nil
				}),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = contractsStatePay

	return m, m.form.Init()
}

func (m ContractsModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = contractsStateInstallments
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.payCmd()
}

func (m ContractsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contracts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var content string

	switch m.state {
	case contractsStateBrowse:
		content = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	default:
		header := ""
		if m.selected != nil {
			header = fmt.Sprintf("Contract %s | Remaining: %s",
				m.selected.Number, FormatAmount(m.selected.Remaining()))
		}

		tableView := lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.installTable.View())

		content = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(header),
			tableView,
		)

		if m.state == contractsStatePay && m.form != nil {
			panel := lipgloss.NewStyle().
				Padding(1, 2).
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63")).
				Width(44).
				Render("Record Payment\n\n" + m.form.View())

			content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
		}
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ContractsModel) refreshContractsTable() {
	rows := make([]table.Row, 0, len(m.contracts))
	for _, c := range m.contracts {
		clientName := ""
		if c.Client != nil {
			clientName = c.Client.Name
		}

		rows = append(rows, table.Row{
			c.Number,
			clientName,
			FormatAmount(c.TotalAmount),
			FormatAmount(c.Remaining()),
			strconv.Itoa(c.MonthCount),
			string(c.Plan),
			FormatDate(c.StartDate),
		})
	}

	m.table.SetRows(rows)
}

func (m *ContractsModel) refreshInstallmentsTable() {
	rows := make([]table.Row, 0, len(m.installments))
	for _, in := range m.installments {
		paidAt := ""
		if in.PaidAt != nil {
			paidAt = FormatDate(*in.PaidAt)
		}

		rows = append(rows, table.Row{
			strconv.Itoa(in.Sequence),
			FormatDate(in.DueDate),
			FormatAmount(in.Amount),
			FormatAmount(in.PaidAmount),
			string(in.Status),
			paidAt,
		})
	}

	m.installTable.SetRows(rows)
}

// parseAmount reads a decimal currency string like "123.45" into cents.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	if d.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	return d.Shift(2).IntPart(), nil
}

// Messages

type loadContractsMsg struct {
	contracts []*contract.Contract
	err       error
}

func (m ContractsModel) loadContractsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		contracts, err := m.svc.List(ctx, contract.ListFilter{})
		return loadContractsMsg{contracts: contracts, err: err}
	}
}

type loadInstallmentsMsg struct {
	installments []*contract.Installment
	err          error
}

func (m ContractsModel) loadInstallmentsCmd() tea.Cmd {
	if m.selected == nil {
		return nil
	}

	id := m.selected.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		installments, err := m.svc.ListInstallments(ctx, id)
		return loadInstallmentsMsg{installments: installments, err: err}
	}
}

type generateMsg struct {
	count int
	err   error
}

func (m ContractsModel) generateCmd() tea.Cmd {
	if m.selected == nil {
		return nil
	}

	id := m.selected.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		installments, err := m.svc.GenerateInstallments(ctx, id)
		return generateMsg{count: len(installments), err: err}
	}
}

type payMsg struct {
	err error
}

func (m ContractsModel) payCmd() tea.Cmd {
	idx := m.installTable.Cursor()
	if m.selected == nil || idx < 0 || idx >= len(m.installments) {
		return nil
	}

	contractID := m.selected.ID
	installmentID := m.installments[idx].ID

	amount, err := parseAmount(m.formAmount)
	if err != nil {
		return func() tea.Msg { return payMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.svc.RecordPayment(ctx, contract.PaymentParams{
			ContractID:    contractID,
			InstallmentID: installmentID,
			Amount:        amount,
			PaidAt:        time.Now(),
		})

		return payMsg{err: err}
	}
}
