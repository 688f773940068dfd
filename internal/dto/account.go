package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name         string             `json:"name" binding:"required"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode string             `json:"currencyCode" binding:"required,len=3"`
	Description  string             `json:"description"` // Optional
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	Description   string             `json:"description"`
	IsActive      bool               `json:"isActive"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
// AsOf is set only when the balance was computed for a historical date.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      string          `json:"asOf,omitempty"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
