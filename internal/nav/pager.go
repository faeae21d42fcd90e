// Package nav holds chapter navigation state shared by the views.
package nav

import "fmt"

// Pager splits Total items into pages of PerPage items. Pages are 1-based.
type Pager struct {
	Total   int
	PerPage int
}

// Pages returns the page count, never less than 1.
func (p Pager) Pages() int {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// Clamp limits page to [1, Pages()].
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if n := p.Pages(); page > n {
		return n
	}
	return page
}

// Bounds returns the half-open item range [start, end) of page.
func (p Pager) Bounds(page int) (start, end int) {
	if p.PerPage <= 0 || p.Total <= 0 {
		return 0, 0
	}
	page = p.Clamp(page)
	start = (page - 1) * p.PerPage
	end = start + p.PerPage
	if end > p.Total {
		end = p.Total
	}
	return start, end
}

// PageOf returns the page holding the item at index.
func (p Pager) PageOf(index int) int {
	if p.PerPage <= 0 || index < 0 {
		return 1
	}
	return p.Clamp(index/p.PerPage + 1)
}

// Wrap returns page moved by delta, wrapping around both ends.
func (p Pager) Wrap(page, delta int) int {
	n := p.Pages()
	page = (p.Clamp(page) - 1 + delta) % n
	if page < 0 {
		page += n
	}
	return page + 1
}

// Label renders "page / pages".
func (p Pager) Label(page int) string {
	return fmt.Sprintf("%d / %d", p.Clamp(page), p.Pages())
}

// Slice returns the items of page.
func Slice[T any](items []T, perPage, page int) []T {
	start, end := Pager{Total: len(items), PerPage: perPage}.Bounds(page)
	return items[start:end]
}
