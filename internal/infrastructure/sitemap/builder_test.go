package sitemap

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
)

func TestBuild(t *testing.T) {
	updated := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	categories := []entity.Category{
		{ID: "c1", Slug: "sarees", IsActive: true, UpdatedAt: updated},
		{ID: "c2", Slug: "retired", IsActive: false, UpdatedAt: updated},
	}
	products := []*entity.Product{
		{ID: "p1", Slug: "kanjivaram-saree", IsActive: true, UpdatedAt: updated},
		{ID: "p2", Slug: "discontinued-kurta", IsActive: false, UpdatedAt: updated},
	}

	out, err := NewBuilder("https://www.aaryaethnics.in/").Build(categories, products)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	urlset := doc.SelectElement("urlset")
	require.NotNil(t, urlset)
	assert.Equal(t, "http://www.sitemaps.org/schemas/sitemap/0.9", urlset.SelectAttrValue("xmlns", ""))

	var locs []string
	for _, u := range urlset.SelectElements("url") {
		locs = append(locs, u.SelectElement("loc").Text())
	}
	assert.Equal(t, []string{
		"https://www.aaryaethnics.in/",
		"https://www.aaryaethnics.in/category/sarees",
		"https://www.aaryaethnics.in/product/kanjivaram-saree",
	}, locs, "inactive entries are left out, home page leads")

	category := urlset.SelectElements("url")[1]
	assert.Equal(t, "2026-08-10", category.SelectElement("lastmod").Text())
	assert.Equal(t, "daily", category.SelectElement("changefreq").Text())
}

func TestBuild_EmptyCatalog(t *testing.T) {
	out, err := NewBuilder("https://www.aaryaethnics.in").Build(nil, nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	require.Len(t, doc.SelectElement("urlset").SelectElements("url"), 1)
}
