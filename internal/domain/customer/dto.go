// internal/domain/customer/dto.go
package customer

import "bizcare-service/internal/pkg/isotime"

// UpdateCustomerRequest is an administrative edit. Nil fields are left untouched.
type UpdateCustomerRequest struct {
	Status     *string `json:"status,omitempty"`
	CareStatus *string `json:"care_status,omitempty"`
}

type CustomerResponse struct {
	ID                   string  `json:"customer_id"`
	CustomerCode         string  `json:"customer_code"`
	BusinessName         *string `json:"business_name"`
	OwnerName            *string `json:"owner_name"`
	BusinessRegistration *string `json:"business_registration"`
	Phone                *string `json:"phone"`
	Email                *string `json:"email"`
	Address              *string `json:"address"`
	Status               string  `json:"status"`
	CareStatus           *string `json:"care_status"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	resp := &CustomerResponse{
		ID:           c.ID.String(),
		CustomerCode: c.CustomerCode,
		Status:       c.Status,
		CreatedAt:    isotime.Format(c.CreatedAt),
		UpdatedAt:    isotime.Format(c.UpdatedAt),
	}
	if c.BusinessName.Valid {
		resp.BusinessName = &c.BusinessName.String
	}
	if c.OwnerName.Valid {
		resp.OwnerName = &c.OwnerName.String
	}
	if c.BusinessRegistration.Valid {
		resp.BusinessRegistration = &c.BusinessRegistration.String
	}
	if c.Phone.Valid {
		resp.Phone = &c.Phone.String
	}
	if c.Email.Valid {
		resp.Email = &c.Email.String
	}
	if c.Address.Valid {
		resp.Address = &c.Address.String
	}
	if c.CareStatus.Valid {
		resp.CareStatus = &c.CareStatus.String
	}
	return resp
}
