package utils

const DefaultPageSize = 10

/*

Page is a paginated slice of results.

Data: items on the current page
CurrentPage/LastPage/PerPage/Total: paginator position
From/To: 1-based index range of the returned items, 0 when the page
is empty

*/

type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int64       `json:"total"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}

// Paginate wraps one page of items into a Page. count is the number of
// items actually on this page, total the overall row count.
func Paginate(data interface{}, page, perPage, count int, total int64) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	from, to := 0, 0
	if count > 0 {
		from = (page-1)*perPage + 1
		to = from + count - 1
	}
	return Page{
		Data:        data,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		From:        from,
		To:          to,
	}
}

// SanitizePageParams clamps user provided paging values to sane ranges.
func SanitizePageParams(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}
