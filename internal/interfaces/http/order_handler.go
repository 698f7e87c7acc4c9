package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/application/order"
	"github.com/aaryaethnics/storefront-api/internal/domain"
)

// OrderHandler serves checkout on the storefront and order management on
// the admin panel.
type OrderHandler struct {
	createUC *order.CreateOrderUseCase
	adminUC  *order.AdminUseCase
}

func NewOrderHandler(createUC *order.CreateOrderUseCase, adminUC *order.AdminUseCase) *OrderHandler {
	return &OrderHandler{createUC: createUC, adminUC: adminUC}
}

// Checkout godoc
// @Summary      Place an order
// @Description  Validates the payload, reprices every line from the catalog and persists the order. Client-sent totals are ignored.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Checkout payload"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}

	// Empty for guest checkout; set when the customer is logged in.
	userID := GetUserID(c)

	out, err := h.createUC.Create(c.Context(), userID, in)
	if err != nil {
		var vErr *order.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "checkout payload rejected",
				Fields:  vErr.Fields,
			})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "a line references an unknown or inactive product"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List orders
// @Tags         admin-orders
// @Produce      json
// @Param        status  query  string  false  "Filter by status"
// @Param        limit   query  int     false  "Page size"  default(20)
// @Param        offset  query  int     false  "Offset"     default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Security     BearerAuth
// @Router       /api/admin/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	out, err := h.adminUC.List(status, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get one order with its items
// @Tags         admin-orders
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.adminUC.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Apply an order status transition
// @Tags         admin-orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "New status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status is required"})
	}

	out, err := h.adminUC.UpdateStatus(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Download the order receipt as PDF
// @Tags         admin-orders
// @Produce      application/pdf
// @Param        id  path  string  true  "Order ID"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, err := h.adminUC.ReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt.pdf"`)
	return c.Send(pdf)
}
