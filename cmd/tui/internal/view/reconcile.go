package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rjcosta/brickerp/internal/reconcile"
)

type reconcileState int

const (
	reconcileStateForm reconcileState = iota
	reconcileStateRunning
	reconcileStateDone
)

type ReconcileModel struct {
	CommonModel
	svc      *reconcile.Service
	defaults reconcile.Options

	state reconcileState
	form  *huh.Form

	formAmount string
	formDays   string

	result *reconcile.Result
	err    error
}

func NewReconcileModel(svc *reconcile.Service, defaults reconcile.Options) ReconcileModel {
	m := ReconcileModel{
		svc:        svc,
		defaults:   defaults,
		formAmount: FormatAmount(defaults.ToleranceAmount),
		formDays:   strconv.Itoa(defaults.ToleranceDays),
	}
	m.form = m.newForm()

	return m
}

func (m ReconcileModel) Title() string { return "Reconcile Bank Entries" }
func (m ReconcileModel) ShortHelp() string {
	if m.state == reconcileStateDone {
		return "Esc: back | r: run again"
	}

	return "Enter: run | Esc: back"
}

func (m ReconcileModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("tolerance_amount").
				Title("Amount tolerance").
				Description("Widest accepted amount gap, in currency units").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("tolerance_days").
				Title("Date tolerance (days)").
				Value(&m.formDays).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n <= 0 {
						return fmt.Errorf("must be a positive number of days")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ReconcileModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ReconcileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case reconcileDoneMsg:
		m.state = reconcileStateDone
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == reconcileStateDone && msg.String() == "r" {
			m.state = reconcileStateForm
			m.result = nil
			m.err = nil
			m.form = m.newForm()

			return m, m.form.Init()
		}
	}

	if m.state != reconcileStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = reconcileStateRunning

	return m, m.runCmd()
}

func (m ReconcileModel) View() string {
	switch m.state {
	case reconcileStateRunning:
		return lipgloss.NewStyle().Padding(2).Render("Matching bank credits against installments...")
	case reconcileStateDone:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Reconcile failed: %v", m.err))
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
			"Reconcile complete\n\nMatched %d of %d unposted credits\n\nr: run again | Esc: back",
			m.result.Matched, m.result.Total,
		))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render("Reconcile\n\n" + m.form.View())
}

type reconcileDoneMsg struct {
	result *reconcile.Result
	err    error
}

func (m ReconcileModel) runCmd() tea.Cmd {
	amount, err := parseAmount(m.formAmount)
	if err != nil {
		return func() tea.Msg { return reconcileDoneMsg{err: err} }
	}

	days, err := strconv.Atoi(m.formDays)
	if err != nil {
		return func() tea.Msg { return reconcileDoneMsg{err: err} }
	}

	opts := reconcile.Options{ToleranceAmount: amount, ToleranceDays: days}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.svc.Run(ctx, opts)
		return reconcileDoneMsg{result: result, err: err}
	}
}
