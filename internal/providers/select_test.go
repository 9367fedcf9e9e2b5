package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() []Article {
	return []Article{
		{Slug: "a", SortKey: "2024061502", PublishedDate: "2024年06月15日"},
		{Slug: "b", SortKey: "2024061501", PublishedDate: "2024年06月15日"},
		{Slug: "c", SortKey: "2024053101", PublishedDate: "2024年05月31日"},
		{Slug: "d"},
	}
}

func slugs(list []Article) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Slug)
	}
	return out
}

func TestFilterByDate(t *testing.T) {
	all := sample()

	assert.Equal(t, []string{"a", "b"}, slugs(FilterByDate(all, "20240615")))
	assert.Equal(t, []string{"a", "b"}, slugs(FilterByDate(all, "2024年06月15日")))
	assert.Equal(t, []string{"a", "b", "c"}, slugs(FilterByDate(all, "2024")))
	assert.Equal(t, []string{"c"}, slugs(FilterByDate(all, " 202405 ")))
	assert.Empty(t, FilterByDate(all, "2023"))
	assert.Empty(t, FilterByDate(all, "june"))
}

func TestFilterRange(t *testing.T) {
	all := sample()

	assert.Equal(t, []string{"b", "c"}, slugs(FilterRange(all, "2-3")))
	assert.Equal(t, []string{"a"}, slugs(FilterRange(all, "1 - 1")))
	assert.Nil(t, FilterRange(all, "3-2"))
	assert.Nil(t, FilterRange(all, "0-2"))
	assert.Nil(t, FilterRange(all, "1-9"))
	assert.Nil(t, FilterRange(all, "x-2"))
	assert.Nil(t, FilterRange(all, "1"))
}

func TestFilterList(t *testing.T) {
	all := sample()

	assert.Equal(t, []string{"d", "a"}, slugs(FilterList(all, "4,1")))
	assert.Equal(t, []string{"b"}, slugs(FilterList(all, "0, 2, 99, x,")))
	assert.Empty(t, FilterList(all, ""))
}

func TestFilterPrecedence(t *testing.T) {
	all := sample()

	assert.Equal(t, all, Filter(all, "", "", ""))
	assert.Equal(t, []string{"c"}, slugs(Filter(all, "202405", "1-2", "1")))
	assert.Equal(t, []string{"a", "b"}, slugs(Filter(all, "", "1-2", "3")))
	assert.Equal(t, []string{"c"}, slugs(Filter(all, "", "", "3")))
}
