package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/application/usecase"
	"github.com/aaryaethnics/storefront-api/internal/domain"
)

// HeaderSessionID identifies the anonymous storefront session owning the
// cart.
const HeaderSessionID = "X-Session-ID"

// CartHandler serves the session cart. Prices are captured from the
// catalog at add time; the remote sync later resolves authoritative ones.
type CartHandler struct {
	carts    *cart.Manager
	products *usecase.ProductUseCase
}

func NewCartHandler(carts *cart.Manager, products *usecase.ProductUseCase) *CartHandler {
	return &CartHandler{carts: carts, products: products}
}

func (h *CartHandler) session(c *fiber.Ctx) (*cart.SessionCart, error) {
	sessionID := c.Get(HeaderSessionID)
	if sessionID == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: HeaderSessionID + " header required"})
	}
	sc, err := h.carts.Get(sessionID)
	if err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return sc, nil
}

// Get godoc
// @Summary      Current cart state
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	return c.JSON(toCartResponse(sc))
}

// AddItem godoc
// @Summary      Add a line to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Param        body  body  dto.AddCartItemRequest  true  "Line to add"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}

	line, err := h.resolveLine(in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product or variant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	if err := sc.AddItem(line, in.Quantity); err != nil {
		if errors.Is(err, domain.ErrCurrencyMismatch) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CURRENCY_MISMATCH", Message: "cart lines must share one currency"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCartResponse(sc))
}

// resolveLine builds the cart line from the catalog: name, unit price
// (base plus variant delta) and currency come from the product record,
// never from the client.
func (h *CartHandler) resolveLine(in dto.AddCartItemRequest) (cart.Line, error) {
	p, err := h.products.GetByID(in.ProductID)
	if err != nil {
		return cart.Line{}, err
	}
	if p == nil || !p.IsActive {
		return cart.Line{}, domain.ErrNotFound
	}

	price := p.Price
	if in.VariantID != "" {
		found := false
		for _, v := range p.Variants {
			if v.ID == in.VariantID {
				price = price.Add(v.PriceDelta)
				found = true
				break
			}
		}
		if !found {
			return cart.Line{}, domain.ErrNotFound
		}
	}

	line := cart.Line{
		Ref:       cart.ProductRef{ProductID: in.ProductID, VariantID: in.VariantID},
		Name:      p.Name,
		UnitPrice: price,
		Currency:  p.Currency,
	}
	for _, o := range in.Options {
		line.Options = append(line.Options, cart.Option{Key: o.Key, Value: o.Value})
	}
	return line, nil
}

// UpdateItem godoc
// @Summary      Change a line quantity; zero or less removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Param        body  body  dto.UpdateCartItemRequest  true  "Line and quantity"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/cart/items [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id is required"})
	}
	ref := cart.ProductRef{ProductID: in.ProductID, VariantID: in.VariantID}
	if err := sc.UpdateQuantity(ref, toOptions(in.Options), in.Quantity); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toCartResponse(sc))
}

// Clear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	if err := sc.Clear(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Drawer godoc
// @Summary      Show or hide the cart drawer
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Param        body  body  object{open=bool}  true  "Drawer state"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/cart/drawer [put]
func (h *CartHandler) Drawer(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	var in struct {
		Open bool `json:"open"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	sc.SetOpen(in.Open)
	return c.JSON(toCartResponse(sc))
}

// Sync godoc
// @Summary      Push the local cart to the commerce backend
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart/sync [post]
func (h *CartHandler) Sync(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	if err := sc.Sync(c.Context()); err != nil {
		if errors.Is(err, cart.ErrSyncInFlight) {
			// Coalesce: the in-flight sync will land; the client retries
			// from the drawer.
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_IN_FLIGHT", Message: "a sync is already running"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_FAILED", Message: err.Error()})
	}
	return c.JSON(toCartResponse(sc))
}

// CheckoutURL godoc
// @Summary      Remote checkout URL after a successful sync
// @Tags         cart
// @Produce      json
// @Param        X-Session-ID  header  string  true  "Session ID"
// @Success      200  {object}  dto.CheckoutURLResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart/checkout-url [get]
func (h *CartHandler) CheckoutURL(c *fiber.Ctx) error {
	sc, err := h.session(c)
	if sc == nil {
		return err
	}
	url, err := sc.CheckoutURL()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_SYNCED", Message: "cart has not completed a sync yet"})
	}
	return c.JSON(dto.CheckoutURLResponse{CheckoutURL: url})
}

func toOptions(in []dto.CartOptionDTO) []cart.Option {
	var out []cart.Option
	for _, o := range in {
		out = append(out, cart.Option{Key: o.Key, Value: o.Value})
	}
	return out
}

func toCartResponse(sc *cart.SessionCart) dto.CartResponse {
	lines := sc.Lines()
	out := dto.CartResponse{
		Lines:      make([]dto.CartLineResponse, 0, len(lines)),
		TotalItems: sc.TotalItems(),
		TotalPrice: sc.TotalPrice(),
		Currency:   sc.Store.Currency(),
		IsOpen:     sc.IsOpen(),
		IsSyncing:  sc.IsSyncing(),
	}
	for _, l := range lines {
		lr := dto.CartLineResponse{
			ProductID: l.Ref.ProductID,
			VariantID: l.Ref.VariantID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal(),
			Currency:  l.Currency,
		}
		for _, o := range l.Options {
			lr.Options = append(lr.Options, dto.CartOptionDTO{Key: o.Key, Value: o.Value})
		}
		out.Lines = append(out.Lines, lr)
	}
	return out
}
