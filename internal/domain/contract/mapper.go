// internal/domain/contract/mapper.go
package contract

import (
	"database/sql"

	"bizcare-service/internal/domain/sequence"
	"bizcare-service/internal/pkg/isotime"
)

// ToDetail projects a joined record into the external contract shape.
// Storage URLs of uploaded documents are never exposed. Returns nil for a nil
// record.
func ToDetail(rec *Record) *Detail {
	if rec == nil || rec.Contract == nil {
		return nil
	}
	c := rec.Contract

	created := isotime.Format(c.CreatedAt)
	d := &Detail{
		ID:                   c.ID.String(),
		CustomerNumber:       str(c.CustomerNumber),
		ContractNumber:       contractNumber(c),
		Name:                 str(c.OwnerName),
		Phone:                str(c.Phone),
		BusinessName:         str(c.BusinessName),
		Address:              str(c.Address),
		Email:                str(c.Email),
		BusinessRegistration: str(c.BusinessRegistration),
		BankName:             str(c.BankName),
		AccountNumber:        str(c.AccountNumber),
		AccountHolder:        str(c.AccountHolder),
		AdditionalRequests:   str(c.AdditionalRequests),
		Documents: Documents{
			BankAccountImage:          document(c.BankAccountImage),
			IDCardImage:               document(c.IDCardImage),
			BusinessRegistrationImage: document(c.BusinessRegistrationImage),
		},
		Status:                  string(c.Status),
		CreatedAt:               &created,
		InternetPlan:            str(c.InternetPlan),
		InternetMonthlyFee:      num(c.InternetMonthlyFee),
		CCTVCount:               num(c.CCTVCount),
		CCTVMonthlyFee:          num(c.CCTVMonthlyFee),
		InstallationAddress:     str(c.InstallationAddress),
		TotalMonthlyFee:         num(c.TotalMonthlyFee),
		ContractItems:           []ItemInfo{},
		ContractPeriod:          num(c.ContractPeriod),
		FreePeriod:              num(c.FreePeriod),
		StartDate:               isotime.FormatNull(c.StartDate),
		EndDate:                 isotime.FormatNull(c.EndDate),
		CustomerSignatureAgreed: c.CustomerSignatureAgreed.Valid && c.CustomerSignatureAgreed.Bool,
		CustomerSignedAt:        isotime.FormatNull(c.CustomerSignedAt),
	}
	if c.CreatedAt.IsZero() {
		d.CreatedAt = nil
	}

	if cu := rec.Customer; cu != nil {
		d.Customer = &CustomerInfo{
			CustomerCode: cu.CustomerCode,
			BusinessName: str(cu.BusinessName),
			OwnerName:    str(cu.OwnerName),
			Phone:        str(cu.Phone),
			CareStatus:   str(cu.CareStatus),
		}
	}

	switch {
	case rec.Package != nil:
		p := rec.Package
		d.Package = &PackageInfo{
			Name:              p.Name,
			MonthlyFee:        num(p.MonthlyFee),
			ContractPeriod:    num(p.ContractPeriod),
			FreePeriod:        num(p.FreePeriod),
			ClosureRefundRate: num(p.ClosureRefundRate),
			IncludedServices:  []string(p.IncludedServices),
		}
	case c.PackageName.Valid && c.PackageName.String != "":
		d.Package = &PackageInfo{Name: c.PackageName.String}
	}

	for _, item := range rec.Items {
		if item == nil {
			continue
		}
		info := ItemInfo{
			Quantity: num(item.Quantity),
			Fee:      num(item.Fee),
		}
		if p := item.Product; p != nil {
			info.Product = &ProductInfo{
				ProductID:   p.ID.String(),
				Name:        p.Name,
				Category:    p.Category,
				Provider:    str(p.Provider),
				Description: str(p.Description),
			}
		}
		d.ContractItems = append(d.ContractItems, info)
	}

	return d
}

// ToQuoteView flattens the quote columns of a contract.
func ToQuoteView(c *Contract) *QuoteView {
	if c == nil {
		return nil
	}
	v := &QuoteView{
		ID:                  c.ID.String(),
		CustomerNumber:      str(c.CustomerNumber),
		ContractNumber:      str(c.ContractNumber),
		BusinessName:        str(c.BusinessName),
		OwnerName:           str(c.OwnerName),
		Phone:               str(c.Phone),
		Email:               str(c.Email),
		Address:             str(c.Address),
		Status:              string(c.Status),
		InternetPlan:        str(c.InternetPlan),
		InternetMonthlyFee:  num(c.InternetMonthlyFee),
		CCTVCount:           num(c.CCTVCount),
		CCTVMonthlyFee:      num(c.CCTVMonthlyFee),
		InstallationAddress: str(c.InstallationAddress),
		TotalMonthlyFee:     num(c.TotalMonthlyFee),
		AdminNotes:          c.AdminNotes,
		QuoteDetails:        c.AdminNotes,
		ProcessedBy:         str(c.ProcessedBy),
		ProcessedAt:         isotime.FormatNull(c.ProcessedAt),
		CreatedAt:           isotime.Format(c.CreatedAt),
		UpdatedAt:           isotime.Format(c.UpdatedAt),
	}
	if c.CustomerID.Valid {
		id := c.CustomerID.UUID.String()
		v.CustomerID = &id
	}
	return v
}

func contractNumber(c *Contract) *string {
	if c.ContractNumber.Valid && c.ContractNumber.String != "" {
		return &c.ContractNumber.String
	}
	if c.CustomerNumber.Valid && c.CustomerNumber.String != "" {
		n := sequence.ContractNumberFor(c.CustomerNumber.String)
		return &n
	}
	return nil
}

func document(ref sql.NullString) string {
	if ref.Valid && ref.String != "" {
		return DocumentUploaded
	}
	return DocumentNotUploaded
}

func str(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func num(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
