package repository

// Page is an explicit pagination descriptor: 1-based page number plus page
// size. Making it a value type keeps "which rows does this query cover"
// a testable contract instead of arithmetic scattered through callers.
type Page struct {
	Num  int
	Size int
}

// DefaultPageSize matches the admin table screens.
const DefaultPageSize = 20

// Normalize clamps a page descriptor into a usable range.
func (p Page) Normalize() Page {
	if p.Num < 1 {
		p.Num = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	return p
}

// LimitOffset converts the descriptor to LIMIT/OFFSET values: page p with
// size s covers rows [(p-1)*s, p*s-1].
func (p Page) LimitOffset() (limit, offset int) {
	p = p.Normalize()
	return p.Size, (p.Num - 1) * p.Size
}

// Paged bundles one page of rows with the exact total count so clients
// can compute the page count.
type Paged[T any] struct {
	Data     []T   `json:"data"`
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}
