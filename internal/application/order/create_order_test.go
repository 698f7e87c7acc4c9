package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/application/order"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// fakeProductRepo serves a fixed catalog.
type fakeProductRepo struct {
	products map[string]*entity.Product
	variants map[string]*entity.ProductVariant
}

func (f *fakeProductRepo) Create(*entity.Product) error  { return nil }
func (f *fakeProductRepo) Update(*entity.Product) error  { return nil }
func (f *fakeProductRepo) Delete(string) error           { return nil }
func (f *fakeProductRepo) GetBySlug(string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetVariant(id string) (*entity.ProductVariant, error) {
	return f.variants[id], nil
}
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) ListByCategory(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListFeatured(int) ([]*entity.Product, error) { return nil, nil }

// fakeTx runs the callback against an in-memory order store.
type fakeTx struct {
	created *entity.Order
	failErr error
}

func (f *fakeTx) RunOrder(_ context.Context, fn func(repository.OrderRepository) error) error {
	if f.failErr != nil {
		return f.failErr
	}
	return fn(f)
}

// fakeTx doubles as the per-tx order repository.
func (f *fakeTx) Create(o *entity.Order) error                   { f.created = o; return nil }
func (f *fakeTx) GetByID(string) (*entity.Order, error)          { return nil, nil }
func (f *fakeTx) GetByNumber(string) (*entity.Order, error)      { return nil, nil }
func (f *fakeTx) List(string, int, int) ([]*entity.Order, error) { return nil, nil }
func (f *fakeTx) UpdateStatus(string, string) error              { return nil }

func inr(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func catalogFixture() *fakeProductRepo {
	return &fakeProductRepo{
		products: map[string]*entity.Product{
			"saree-1": {ID: "saree-1", Name: "Kanjivaram Saree", Price: inr(4500), Currency: "INR", IsActive: true},
			"kurta-1": {ID: "kurta-1", Name: "Chikankari Kurta", Price: inr(1200), Currency: "INR", IsActive: true},
			"gone-1":  {ID: "gone-1", Name: "Retired", Price: inr(100), Currency: "INR", IsActive: false},
		},
		variants: map[string]*entity.ProductVariant{
			"v-xl": {ID: "v-xl", ProductID: "kurta-1", SKU: "KRT-XL", PriceDelta: inr(100),
				Options: json.RawMessage(`{"size":"XL"}`), InStock: true},
		},
	}
}

func validPayload(items ...dto.CreateOrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName: "Ananya Sharma",
		Email:        "ananya@example.com",
		Phone:        "+919876543210",
		AddressLine1: "14 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
		PostalCode:   "560001",
		Items:        items,
	}
}

func pricing() order.Pricing {
	return order.Pricing{ShippingFee: inr(99), FreeShippingMin: inr(5000)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — repricing and totals
// ──────────────────────────────────────────────────────────────────────────────

// Totals come from the catalog, not the client: 2×4500 + 1×(1200+100),
// free shipping above 5000.
func TestCreateOrder_RepricesFromCatalog(t *testing.T) {
	tx := &fakeTx{}
	uc := order.NewCreateOrderUseCase(tx, catalogFixture(), pricing())

	out, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "saree-1", Quantity: 2},
		dto.CreateOrderItemRequest{ProductID: "kurta-1", VariantID: "v-xl", Quantity: 1},
	))
	require.NoError(t, err)

	assert.True(t, out.Subtotal.Equal(inr(10300)), "2×4500 + 1300")
	assert.True(t, out.ShippingFee.IsZero(), "free shipping above 5000")
	assert.True(t, out.Total.Equal(inr(10300)))
	assert.Equal(t, "INR", out.Currency)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "size: XL", out.Items[1].Options)
	require.NotNil(t, tx.created, "order persisted through the tx runner")
	assert.NotEmpty(t, tx.created.Number)
}

func TestCreateOrder_FlatShippingBelowThreshold(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	out, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "kurta-1", Quantity: 1},
	))
	require.NoError(t, err)

	assert.True(t, out.ShippingFee.Equal(inr(99)))
	assert.True(t, out.Total.Equal(inr(1299)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — validation (server is the authoritative gate)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_RejectsInvalidPayload(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	in := validPayload(dto.CreateOrderItemRequest{ProductID: "saree-1", Quantity: 1})
	in.Email = "not-an-email"
	in.PostalCode = ""

	_, err := uc.Create(context.Background(), "", in)

	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Email")
	assert.Contains(t, verr.Fields, "PostalCode")
}

func TestCreateOrder_RejectsEmptyItems(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload())

	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCreateOrder_RejectsNonPositiveQuantity(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "saree-1", Quantity: 0},
	))

	var verr *order.ValidationError
	require.ErrorAs(t, err, &verr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create — catalog lookups
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_UnknownProduct(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "ghost", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_InactiveProductRejected(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "gone-1", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A variant belonging to a different product is rejected.
func TestCreateOrder_ForeignVariantRejected(t *testing.T) {
	uc := order.NewCreateOrderUseCase(&fakeTx{}, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "saree-1", VariantID: "v-xl", Quantity: 1},
	))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_TxFailureSurfaces(t *testing.T) {
	tx := &fakeTx{failErr: errors.New("deadlock")}
	uc := order.NewCreateOrderUseCase(tx, catalogFixture(), pricing())

	_, err := uc.Create(context.Background(), "", validPayload(
		dto.CreateOrderItemRequest{ProductID: "saree-1", Quantity: 1},
	))
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Admin — status machine
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrderRepo single stored order.
type fakeOrderRepo struct {
	order  *entity.Order
	status string
}

func (f *fakeOrderRepo) Create(*entity.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	if f.order != nil && f.order.ID == id {
		o := *f.order
		return &o, nil
	}
	return nil, nil
}
func (f *fakeOrderRepo) GetByNumber(string) (*entity.Order, error)      { return nil, nil }
func (f *fakeOrderRepo) List(string, int, int) ([]*entity.Order, error) { return nil, nil }
func (f *fakeOrderRepo) UpdateStatus(_, status string) error {
	f.status = status
	f.order.Status = status
	return nil
}

func TestAdmin_StatusTransitions(t *testing.T) {
	repo := &fakeOrderRepo{order: &entity.Order{ID: "o1", Status: entity.OrderStatusPending}}
	uc := order.NewAdminUseCase(repo, nil)

	out, err := uc.UpdateStatus("o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, out.Status)

	// shipped orders cannot be cancelled
	repo.order.Status = entity.OrderStatusShipped
	_, err = uc.UpdateStatus("o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// delivered is terminal
	repo.order.Status = entity.OrderStatusDelivered
	_, err = uc.UpdateStatus("o1", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusShipped})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdmin_UpdateStatusUnknownOrder(t *testing.T) {
	uc := order.NewAdminUseCase(&fakeOrderRepo{}, nil)

	out, err := uc.UpdateStatus("ghost", dto.UpdateOrderStatusRequest{Status: entity.OrderStatusConfirmed})
	require.NoError(t, err)
	assert.Nil(t, out)
}
