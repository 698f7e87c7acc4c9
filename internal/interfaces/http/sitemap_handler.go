package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
	"github.com/aaryaethnics/storefront-api/internal/infrastructure/sitemap"
)

// sitemapProductCap caps how many products the sitemap lists.
const sitemapProductCap = 1000

// SitemapHandler serves /sitemap.xml from the live catalog.
type SitemapHandler struct {
	builder      *sitemap.Builder
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewSitemapHandler(builder *sitemap.Builder, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *SitemapHandler {
	return &SitemapHandler{builder: builder, categoryRepo: categoryRepo, productRepo: productRepo}
}

// Get godoc
// @Summary      Sitemap for search engines
// @Tags         storefront
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func (h *SitemapHandler) Get(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	products, err := h.productRepo.List(sitemapProductCap, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	xml, err := h.builder.Build(categories, products)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(xml)
}
