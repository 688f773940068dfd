package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// TrialBalanceRowResponse is one account's debit and credit totals.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the trial balance report as of a date.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	// Net is total debits minus total credits. A balanced ledger nets to zero.
	Net decimal.Decimal `json:"net"`
}

// ToTrialBalanceResponse assembles the report from per-account rows,
// accumulating the grand totals as it goes.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, asOf time.Time) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf: asOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}

	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	for i, row := range rows {
		resp.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		debitTotal = debitTotal.Add(row.Debit)
		creditTotal = creditTotal.Add(row.Credit)
	}

	resp.Totals.Debit = debitTotal
	resp.Totals.Credit = creditTotal
	resp.Net = debitTotal.Sub(creditTotal)
	return resp
}
