package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 20
	// MaxPageSize - жесткий потолок, значения выше молча обрезаются
	MaxPageSize = 20
)

var (
	ErrInvalidSortColumn    = errors.New("недопустимый столбец сортировки")
	ErrInvalidSortDirection = errors.New("недопустимое направление сортировки")
)

// Column - разрешенный столбец сортировки и его направление по умолчанию
type Column struct {
	Name       string
	DefaultDir string
}

// Columns - whitelist столбцов для конкретного эндпоинта, первый - по умолчанию
type Columns []Column

func (c Columns) find(name string) (Column, bool) {
	for _, col := range c {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Page - проверенные параметры пагинации и сортировки
type Page struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
}

// Parse разбирает query-параметры по whitelist столбцов.
// Имя столбца никогда не берется из запроса напрямую - только из whitelist.
func Parse(q url.Values, cols Columns) (Page, error) {
	if len(cols) == 0 {
		return Page{}, ErrInvalidSortColumn
	}

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize := DefaultPageSize
	if raw := q.Get("pageSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			pageSize = DefaultPageSize
		} else if parsed > MaxPageSize {
			pageSize = MaxPageSize
		} else {
			pageSize = parsed
		}
	}

	orderBy := q.Get("orderBy")
	if orderBy == "" {
		orderBy = cols[0].Name
	}
	col, ok := cols.find(orderBy)
	if !ok {
		return Page{}, ErrInvalidSortColumn
	}

	orderDir := q.Get("orderDir")
	if orderDir == "" {
		orderDir = col.DefaultDir
	}
	if orderDir != "asc" && orderDir != "desc" {
		return Page{}, ErrInvalidSortDirection
	}

	return Page{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  col.Name,
		OrderDir: orderDir,
	}, nil
}

func (p Page) Limit() int {
	return p.PageSize
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause собирает фрагмент ORDER BY из уже проверенных значений
func (p Page) OrderClause() string {
	return fmt.Sprintf("ORDER BY %s %s", p.OrderBy, p.OrderDir)
}

// SQL - полный хвост запроса: сортировка, лимит и смещение
func (p Page) SQL() string {
	return fmt.Sprintf("%s LIMIT %d OFFSET %d", p.OrderClause(), p.Limit(), p.Offset())
}
