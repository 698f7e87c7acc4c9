// Package sitemap renders the storefront sitemap.xml consumed by search
// engine crawlers.
package sitemap

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Builder renders the sitemap document from the catalog. BaseURL is the
// public storefront origin, e.g. https://www.aaryaethnics.in.
type Builder struct {
	baseURL string
}

func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Build produces the sitemap XML. Inactive categories and products are
// left out; the home page always leads.
func (b *Builder) Build(categories []entity.Category, products []*entity.Product) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", xmlns)

	b.addURL(urlset, b.baseURL+"/", time.Time{}, "daily", "1.0")

	for _, c := range categories {
		if !c.IsActive {
			continue
		}
		b.addURL(urlset, b.baseURL+"/category/"+c.Slug, c.UpdatedAt, "daily", "0.8")
	}
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		b.addURL(urlset, b.baseURL+"/product/"+p.Slug, p.UpdatedAt, "weekly", "0.6")
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("sitemap: serialize: %w", err)
	}
	return out, nil
}

func (b *Builder) addURL(urlset *etree.Element, loc string, lastMod time.Time, changeFreq, priority string) {
	u := urlset.CreateElement("url")
	u.CreateElement("loc").SetText(loc)
	if !lastMod.IsZero() {
		u.CreateElement("lastmod").SetText(lastMod.Format("2006-01-02"))
	}
	u.CreateElement("changefreq").SetText(changeFreq)
	u.CreateElement("priority").SetText(priority)
}
