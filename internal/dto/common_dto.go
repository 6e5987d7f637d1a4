// Package dto holds the request, response and filter shapes exchanged with
// the POSFacturaRD API. All money fields are shopspring decimals.
package dto

// Page is the pagination envelope every list endpoint returns.
type Page[T any] struct {
	Data          []T   `json:"data"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// PageFilter is embedded in every list filter.
type PageFilter struct {
	Page    int `validate:"min=0"`
	PerPage int `validate:"min=0,max=200"`
}
