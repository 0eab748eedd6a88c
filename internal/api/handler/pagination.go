package handler

import "github.com/orius/cartorio-api/internal/core/domain"

// pageQuery is bound from ?skip=&limit=. A zero limit selects the default.
type pageQuery struct {
	Skip  int `query:"skip"  validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=100"`
}

// pageResponse is the envelope of every paginated listing.
type pageResponse[T any] struct {
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
	Data  []T   `json:"data"`
}

func toPageResponse[D, T any](p *domain.Page[D], mapItem func(D) T) pageResponse[T] {
	data := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		data = append(data, mapItem(item))
	}
	return pageResponse[T]{Total: p.Total, Skip: p.Skip, Limit: p.Limit, Data: data}
}
