package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	page := Paginate([]string{"a", "b"}, 2, 2, 2, 5)

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, 2, page.PerPage)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.From)
	assert.Equal(t, 4, page.To)
}

func TestPaginateEmptyPage(t *testing.T) {
	page := Paginate([]string{}, 1, 10, 0, 0)

	assert.Equal(t, 1, page.LastPage)
	assert.Zero(t, page.From)
	assert.Zero(t, page.To)
}

func TestSanitizePageParams(t *testing.T) {
	page, perPage := SanitizePageParams(0, -3)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, perPage)

	page, perPage = SanitizePageParams(7, 500)
	assert.Equal(t, 7, page)
	assert.Equal(t, 100, perPage)
}

func TestGetUrlExtNameWithDot(t *testing.T) {
	assert.Equal(t, ".jpg", GetUrlExtNameWithDot("photo.JPG"))
	assert.Equal(t, ".png", GetUrlExtNameWithDot("https://example.com/a/b.png?w=100"))
	assert.Equal(t, "", GetUrlExtNameWithDot("no-extension"))
}
