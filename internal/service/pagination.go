package service

import "github.com/prperemyshlev/seller-portal/internal/dto"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest selects one page of a list. Out-of-range values are normalized.
type PageRequest struct {
	Page  int
	Limit int
}

func (p PageRequest) normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.Limit
}

// Paged is one page of items plus its position in the full list
type Paged[T any] struct {
	Items      []T
	Pagination dto.Pagination
}

func newPaged[T any](items []T, page PageRequest, total int) *Paged[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}
	return &Paged[T]{
		Items: items,
		Pagination: dto.Pagination{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
