package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// TxRunner runs the order write inside a database transaction.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// ReceiptGenerator renders the printable order receipt (admin export).
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, order *entity.Order) ([]byte, error)
}

// ValidationError carries per-field messages for a rejected checkout
// payload. The server-side check is the authoritative gate; the client
// mirrors these rules for fast feedback only.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return fmt.Sprintf("order validation failed (%s)", strings.Join(parts, "; "))
}
