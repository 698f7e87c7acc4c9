package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/application/usecase"
	"github.com/aaryaethnics/storefront-api/internal/domain"
)

// MenuHandler handles navigation menu CRUD (admin) and the public nested
// menu.
type MenuHandler struct {
	uc *usecase.MenuUseCase
}

func NewMenuHandler(uc *usecase.MenuUseCase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// Tree godoc
// @Summary      Nested navigation menu for the storefront
// @Tags         menu
// @Produce      json
// @Success      200  {array}  dto.MenuTreeNode
// @Router       /api/menu [get]
func (h *MenuHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.Tree()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Flat menu item list
// @Tags         menu
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MenuItemResponse
// @Router       /api/admin/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Create menu item
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuItemRequest  true  "Menu item data"
// @Success      201   {object}  dto.MenuItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update menu item
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Menu item ID"
// @Param        body  body  dto.UpdateMenuItemRequest  true  "Fields to update"
// @Success      200   {object}  dto.MenuItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/menu/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "menu item not found"})
	}
	return c.JSON(out)
}

// Reorder godoc
// @Summary      Reorder menu siblings under a parent
// @Tags         menu
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.ReorderMenuRequest  true  "Desired order"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/menu/reorder [put]
func (h *MenuHandler) Reorder(c *fiber.Ctx) error {
	var in dto.ReorderMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if len(in.OrderedIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ordered_ids is required"})
	}
	if err := h.uc.Reorder(in.ParentID, in.OrderedIDs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Delete menu item
// @Tags         menu
// @Security     Bearer
// @Param        id  path  string  true  "Menu item ID"
// @Success      204
// @Router       /api/admin/menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
