package query

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page 1 起始的分页参数
type Page struct {
	Page  int
	Limit int
}

// NewPage 规范化分页参数
func NewPage(page, limit int) Page {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset 偏移量
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta 分页元信息
type Meta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// Meta 根据总数计算分页元信息
func (p Page) Meta(total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		Total:       total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNextPage: p.Page < totalPages,
		HasPrevPage: p.Page > 1,
	}
}

// Paginated 分页结果
type Paginated[T any] struct {
	Items []T `json:"items"`
	Meta
}

// NewPaginated 组装分页结果，Items 至少为空切片
func NewPaginated[T any](items []T, p Page, total int64) *Paginated[T] {
	if items == nil {
		items = []T{}
	}
	return &Paginated[T]{Items: items, Meta: p.Meta(total)}
}
