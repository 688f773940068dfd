package mapping

import (
	"github.com/trustbooks/trust_ledger_app/internal/core/domain"
	"github.com/trustbooks/trust_ledger_app/internal/models"
)

// ToModelCheckQueueItem converts a domain CheckQueueItem to a model CheckQueueItem.
func ToModelCheckQueueItem(d domain.CheckQueueItem) models.CheckQueueItem {
	return models.CheckQueueItem{
		CheckItemID:       d.CheckItemID,
		LedgerAccountID:   d.LedgerAccountID,
		ExpenseAccountID:  d.ExpenseAccountID,
		PayeeEntityID:     d.PayeeEntityID,
		CaseID:            d.CaseID,
		CheckNumber:       d.CheckNumber,
		Amount:            d.Amount,
		Memo:              d.Memo,
		CheckDate:         d.CheckDate,
		AmountWords:       d.AmountWords,
		PayeeAddress:      d.PayeeAddress,
		Status:            models.CheckItemStatus(d.Status),
		IsRegistered:      d.IsRegistered,
		RegisteredCheckID: d.RegisteredCheckID,
		PreviewedAt:       d.PreviewedAt,
		PrintedAt:         d.PrintedAt,
		CancelReason:      d.CancelReason,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCheckQueueItem converts a model CheckQueueItem to a domain CheckQueueItem.
func ToDomainCheckQueueItem(m models.CheckQueueItem) domain.CheckQueueItem {
	return domain.CheckQueueItem{
		CheckItemID:       m.CheckItemID,
		LedgerAccountID:   m.LedgerAccountID,
		ExpenseAccountID:  m.ExpenseAccountID,
		PayeeEntityID:     m.PayeeEntityID,
		CaseID:            m.CaseID,
		CheckNumber:       m.CheckNumber,
		Amount:            m.Amount,
		Memo:              m.Memo,
		CheckDate:         m.CheckDate,
		AmountWords:       m.AmountWords,
		PayeeAddress:      m.PayeeAddress,
		Status:            domain.CheckItemStatus(m.Status),
		IsRegistered:      m.IsRegistered,
		RegisteredCheckID: m.RegisteredCheckID,
		PreviewedAt:       m.PreviewedAt,
		PrintedAt:         m.PrintedAt,
		CancelReason:      m.CancelReason,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRegisteredCheck converts a domain RegisteredCheck to its model form.
func ToModelRegisteredCheck(d domain.RegisteredCheck) models.RegisteredCheck {
	return models.RegisteredCheck{
		CheckID:         d.CheckID,
		LedgerAccountID: d.LedgerAccountID,
		PayeeEntityID:   d.PayeeEntityID,
		CaseID:          d.CaseID,
		CheckNumber:     d.CheckNumber,
		Amount:          d.Amount,
		Memo:            d.Memo,
		CheckDate:       d.CheckDate,
		JournalID:       d.JournalID,
		Status:          models.RegisteredCheckStatus(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRegisteredCheck converts a model RegisteredCheck to its domain form.
func ToDomainRegisteredCheck(m models.RegisteredCheck) domain.RegisteredCheck {
	return domain.RegisteredCheck{
		CheckID:         m.CheckID,
		LedgerAccountID: m.LedgerAccountID,
		PayeeEntityID:   m.PayeeEntityID,
		CaseID:          m.CaseID,
		CheckNumber:     m.CheckNumber,
		Amount:          m.Amount,
		Memo:            m.Memo,
		CheckDate:       m.CheckDate,
		JournalID:       m.JournalID,
		Status:          domain.RegisteredCheckStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
