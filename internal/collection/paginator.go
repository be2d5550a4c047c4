package collection

// maxWindowButtons is the widest the compact page-number control gets.
const maxWindowButtons = 5

// Paginator derives a bounded page view over an ordered collection. An
// empty collection has zero pages and the current page is pinned to 1 so
// callers render an empty state rather than divide by zero.
type Paginator struct {
	pageSize int
	total    int
	page     int
}

// NewPaginator creates a paginator with the given fixed page size.
// A non-positive page size falls back to 1.
func NewPaginator(pageSize int) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{pageSize: pageSize, page: 1}
}

// PageSize returns the fixed page size.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// TotalPages returns ceil(total/pageSize), 0 for an empty collection.
func (p *Paginator) TotalPages() int {
	return (p.total + p.pageSize - 1) / p.pageSize
}

// Page returns the current page, always in [1, max(totalPages, 1)].
func (p *Paginator) Page() int {
	return p.page
}

// SetTotal records a new collection length and clamps the current page
// downward so it never points past the new last page.
func (p *Paginator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.clamp()
}

// SetPage moves to the given page, clamped into range.
func (p *Paginator) SetPage(page int) {
	p.page = page
	p.clamp()
}

// Reset returns to the first page. Used when the active collection or the
// filter query changes.
func (p *Paginator) Reset() {
	p.page = 1
}

// Bounds returns the half-open slice [lo, hi) of the current page into the
// ordered collection.
func (p *Paginator) Bounds() (lo, hi int) {
	lo = (p.page - 1) * p.pageSize
	hi = lo + p.pageSize
	if lo > p.total {
		lo = p.total
	}
	if hi > p.total {
		hi = p.total
	}
	return lo, hi
}

// Window returns the page numbers for a compact control showing at most
// five buttons: all pages when they fit, the leading five near the start,
// the trailing five near the end, and a centered window otherwise.
func (p *Paginator) Window() []int {
	totalPages := p.TotalPages()
	if totalPages == 0 {
		return nil
	}

	var first int
	switch {
	case totalPages <= maxWindowButtons:
		first = 1
	case p.page <= 3:
		first = 1
	case p.page >= totalPages-2:
		first = totalPages - maxWindowButtons + 1
	default:
		first = p.page - 2
	}

	count := totalPages
	if count > maxWindowButtons {
		count = maxWindowButtons
	}

	pages := make([]int, count)
	for i := range pages {
		pages[i] = first + i
	}
	return pages
}

func (p *Paginator) clamp() {
	totalPages := p.TotalPages()
	if totalPages == 0 {
		p.page = 1
		return
	}
	if p.page > totalPages {
		p.page = totalPages
	}
	if p.page < 1 {
		p.page = 1
	}
}

// PageSlice applies the paginator's current bounds to the given ordered
// items. The paginator's total must already reflect len(items).
func PageSlice[T any](items []T, p *Paginator) []T {
	lo, hi := p.Bounds()
	if lo >= len(items) {
		return nil
	}
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}
