package mapping

import (
	"github.com/openbooks-hq/openbooks_backend/internal/core/domain"
	"github.com/openbooks-hq/openbooks_backend/internal/models"
)

// ToModelVoucher converts a domain voucher for persistence.
func ToModelVoucher(v domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:        v.VoucherID,
		VoucherType:      string(v.VoucherType),
		VoucherDate:      v.VoucherDate,
		Amount:           v.Amount,
		CashAccountID:    v.CashAccountID,
		CounterAccountID: v.CounterAccountID,
		VoucherTo:        string(v.VoucherTo),
		Narration:        v.Narration,
		EntryID:          v.EntryID,
		AuditFields:      ToModelAuditFields(v.AuditFields),
	}
}

// ToDomainVoucher converts a persisted voucher to the domain shape.
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:        m.VoucherID,
		VoucherType:      domain.VoucherType(m.VoucherType),
		VoucherDate:      m.VoucherDate,
		Amount:           m.Amount,
		CashAccountID:    m.CashAccountID,
		CounterAccountID: m.CounterAccountID,
		VoucherTo:        domain.VoucherCounterparty(m.VoucherTo),
		Narration:        m.Narration,
		EntryID:          m.EntryID,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
