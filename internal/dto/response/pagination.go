package response

import "healthcare-booking/pkg/utils"

type PaginatedResponse[T any] struct {
	Items      []T            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	return PaginationMeta{Page: page, Limit: limit, Total: total, TotalPages: utils.CalculateTotalPages(total, limit)}
}

func NewPaginatedResponse[T any](items []T, page, limit int, total int64) *PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResponse[T]{
		Items:      items,
		Pagination: NewPaginationMeta(page, limit, total),
	}
}
