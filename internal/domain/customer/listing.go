// internal/domain/customer/listing.go
package customer

// StatusAll disables the status filter of a listing.
const StatusAll = "all"

type ListRequest struct {
	Page   int
	Limit  int
	Search string
	Status string
}

// ListFilter matches Search case-insensitively against business name, owner
// name and phone. An empty Status matches every row.
type ListFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type ListResponse struct {
	Customers  []*CustomerResponse `json:"customers"`
	Pagination Pagination          `json:"pagination"`
}
