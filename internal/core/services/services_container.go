package services

import (
	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/PropLedger/prop_ledger_app/internal/core/ports/services"
	"github.com/PropLedger/prop_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountServiceImpl(repos.AccountRepo)
	container.Transaction = NewTransactionServiceImpl(repos.TransactionRepo, repos.AccountRepo)
	container.Budget = NewBudgetServiceImpl(repos.BudgetRepo, repos.AccountRepo, repos.ReportingRepo)
	container.Vendor = NewVendorServiceImpl(repos.VendorRepo, repos.InvoiceRepo)
	container.Invoice = NewInvoiceServiceImpl(repos.InvoiceRepo, repos.AccountRepo)
	container.BankAccount = NewBankAccountServiceImpl(repos.BankAccountRepo, repos.AccountRepo)
	container.HUD = NewHUDServiceImpl(repos.HUDRepo)
	container.Reporting = NewReportingServiceImpl(repos.ReportingRepo)
	container.Auth = NewAuthServiceImpl(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}
