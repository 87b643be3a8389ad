package handler

import (
	"net/http"
	"strconv"

	"github.com/RomanKim94/foodgram/entity"

	"github.com/gin-gonic/gin"
)

// Paginator reads page/limit query parameters and renders list envelopes.
type Paginator struct {
	BaseURL     string
	DefaultSize int
	MaxSize     int
}

func NewPaginator(baseURL string, limits entity.LimitsConfig) Paginator {
	return Paginator{BaseURL: baseURL, DefaultSize: limits.PageSize, MaxSize: limits.MaxPageSize}
}

func positiveQuery(c *gin.Context, key string) (int, bool) {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Page returns the requested page; missing or invalid values fall back to
// page 1 and the default size.
func (p Paginator) Page(c *gin.Context) entity.Page {
	page := entity.Page{Number: 1, Size: p.DefaultSize}
	if n, ok := positiveQuery(c, "page"); ok {
		page.Number = n
	}
	if n, ok := positiveQuery(c, "limit"); ok {
		page.Size = n
	}
	if p.MaxSize > 0 && page.Size > p.MaxSize {
		page.Size = p.MaxSize
	}
	return page
}

func (p Paginator) pageURL(c *gin.Context, number int) string {
	q := c.Request.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u := p.BaseURL + c.Request.URL.Path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// Respond writes {count, next, previous, results}.
func (p Paginator) Respond(c *gin.Context, page entity.Page, count int64, results interface{}) {
	var next, previous *string
	if int64(page.Offset()+page.Size) < count {
		u := p.pageURL(c, page.Number+1)
		next = &u
	}
	if page.Number > 1 {
		u := p.pageURL(c, page.Number-1)
		previous = &u
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}
