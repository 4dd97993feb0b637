package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rjcosta/brickerp/cmd/tui/internal/view"
	"github.com/rjcosta/brickerp/internal/bankimport"
	bankStore "github.com/rjcosta/brickerp/internal/bankimport/store"
	"github.com/rjcosta/brickerp/internal/config"
	"github.com/rjcosta/brickerp/internal/contract"
	contractStore "github.com/rjcosta/brickerp/internal/contract/store"
	"github.com/rjcosta/brickerp/internal/database"
	"github.com/rjcosta/brickerp/internal/reconcile"
	reconcileStore "github.com/rjcosta/brickerp/internal/reconcile/store"
	"github.com/rjcosta/brickerp/internal/report"
	reportStore "github.com/rjcosta/brickerp/internal/report/store"
)

type model struct {
	contractService  *contract.Service
	bankService      *bankimport.Service
	reconcileService *reconcile.Service
	reportService    *report.Service
	reconcileOpts    reconcile.Options

	currentView View

	contractsView view.ContractsModel
	bankView      view.BankEntriesModel
	reconcileView view.ReconcileModel
	debtorsView   view.DebtorsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewContracts View = 1
	ViewBank      View = 2
	ViewReconcile View = 3
	ViewDebtors   View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	contractSvc := contract.NewService(contractStore.New(db))
	bankSvc := bankimport.NewService(bankStore.New(db))
	reconcileSvc := reconcile.NewService(reconcileStore.New(db))
	reportSvc := report.NewService(reportStore.New(db))

	opts := reconcile.Options{
		ToleranceAmount: cfg.Reconcile.ToleranceAmount,
		ToleranceDays:   cfg.Reconcile.ToleranceDays,
	}

	return model{
		contractService:  contractSvc,
		bankService:      bankSvc,
		reconcileService: reconcileSvc,
		reportService:    reportSvc,
		reconcileOpts:    opts,
		currentView:      ViewMenu,
		contractsView:    view.NewContractsModel(contractSvc),
		bankView:         view.NewBankEntriesModel(bankSvc),
		reconcileView:    view.NewReconcileModel(reconcileSvc, opts),
		debtorsView:      view.NewDebtorsModel(reportSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewContracts
				m.contractsView = view.NewContractsModel(m.contractService)

				return m, m.contractsView.Init()
			case "2":
				m.currentView = ViewBank
				m.bankView = view.NewBankEntriesModel(m.bankService)

				return m, m.bankView.Init()
			case "3":
				m.currentView = ViewReconcile
				m.reconcileView = view.NewReconcileModel(m.reconcileService, m.reconcileOpts)

				return m, m.reconcileView.Init()
			case "4":
				m.currentView = ViewDebtors
				m.debtorsView = view.NewDebtorsModel(m.reportService)

				return m, m.debtorsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	case ViewBank:
		var newModel tea.Model
		newModel, cmd = m.bankView.Update(msg)
		m.bankView = newModel.(view.BankEntriesModel)
	case ViewReconcile:
		var newModel tea.Model
		newModel, cmd = m.reconcileView.Update(msg)
		m.reconcileView = newModel.(view.ReconcileModel)
	case ViewDebtors:
		var newModel tea.Model
		newModel, cmd = m.debtorsView.Update(msg)
		m.debtorsView = newModel.(view.DebtorsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"BrickERP TUI\n\n" +
				"1. Contracts & Installments\n" +
				"2. Bank Entries\n" +
				"3. Reconcile\n" +
				"4. Debtors Report\n\n" +
				"q. Quit",
		)
	case ViewContracts:
		return m.contractsView.View()
	case ViewBank:
		return m.bankView.View()
	case ViewReconcile:
		return m.reconcileView.View()
	case ViewDebtors:
		return m.debtorsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
