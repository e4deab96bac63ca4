package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/PropLedger/prop_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		BudgetRepo:      newPgxBudgetRepository(dbPool),
		VendorRepo:      newPgxVendorRepository(dbPool),
		InvoiceRepo:     newPgxInvoiceRepository(dbPool),
		BankAccountRepo: newPgxBankAccountRepository(dbPool),
		HUDRepo:         newPgxHUDRepository(dbPool),
		ReportingRepo:   newPgxReportingRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
