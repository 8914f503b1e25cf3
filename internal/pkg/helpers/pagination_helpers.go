package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads page and size from the query string. Bad values fall back
// to the first page and the default size; sizes above MaxPageSize are clamped.
func ParsePage(c *gin.Context) Page {
	p := Page{Number: 1, Size: DefaultPageSize}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(c.Query("size")); err == nil && n > 0 {
		p.Size = min(n, MaxPageSize)
	}
	return p
}

// bounds returns the slice window of the page over total items.
func (p Page) bounds(total int) (start, end int) {
	start = min((p.Number-1)*p.Size, total)
	end = min(start+p.Size, total)
	return start, end
}

// Info describes the page over total items. The reported page never points
// past the last one; an empty collection still has one page.
func (p Page) Info(total int) dto.PaginationInfo {
	pages := max((total+p.Size-1)/p.Size, 1)
	return dto.PaginationInfo{
		CurrentPage: min(p.Number, pages),
		TotalPages:  pages,
		PageSize:    p.Size,
		TotalItems:  int64(total),
	}
}

// Paginate copies one page of items out together with its metadata.
func Paginate[T any](items []T, p Page) dto.PaginatedResponse {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	start, end := p.bounds(len(items))
	return dto.PaginatedResponse{
		Items:      append(make([]T, 0, end-start), items[start:end]...),
		Pagination: p.Info(len(items)),
	}
}

// PaginateQuery paginates items by the request's page and size.
func PaginateQuery[T any](c *gin.Context, items []T) dto.PaginatedResponse {
	return Paginate(items, ParsePage(c))
}
