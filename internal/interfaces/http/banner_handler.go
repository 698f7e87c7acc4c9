package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/application/usecase"
)

// BannerHandler handles hero banner CRUD (admin) and the public carousel.
type BannerHandler struct {
	uc *usecase.BannerUseCase
}

func NewBannerHandler(uc *usecase.BannerUseCase) *BannerHandler {
	return &BannerHandler{uc: uc}
}

// Active godoc
// @Summary      Active banners for the home carousel
// @Tags         banners
// @Produce      json
// @Success      200  {array}  dto.BannerResponse
// @Router       /api/banners [get]
func (h *BannerHandler) Active(c *fiber.Ctx) error {
	out, err := h.uc.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      All banners, active or not
// @Tags         banners
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BannerResponse
// @Router       /api/admin/banners [get]
func (h *BannerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create banner
// @Tags         banners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBannerRequest  true  "Banner data"
// @Success      201   {object}  dto.BannerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/banners [post]
func (h *BannerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBannerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Title == "" || in.ImageURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title and image_url are required"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update banner
// @Tags         banners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Banner ID"
// @Param        body  body  dto.UpdateBannerRequest  true  "Fields to update"
// @Success      200   {object}  dto.BannerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/banners/{id} [put]
func (h *BannerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBannerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "banner not found"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete banner
// @Tags         banners
// @Security     Bearer
// @Param        id  path  string  true  "Banner ID"
// @Success      204
// @Router       /api/admin/banners/{id} [delete]
func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
