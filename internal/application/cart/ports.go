package cart

import "context"

// Storage is the durable key/value snapshot store behind LocalCart.
// Load returns (nil, nil) when no snapshot exists under the key.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// RemoteCart is the authoritative cart representation held by the external
// commerce backend: the handle identifies it on later updates, CheckoutURL
// is where the buyer completes payment, Lines carry server-resolved prices.
type RemoteCart struct {
	Handle      string
	CheckoutURL string
	Lines       []Line
}

// RemoteCartClient is the port to the external commerce backend.
// Request/response shapes beyond this contract are the backend's business.
type RemoteCartClient interface {
	CreateCart(ctx context.Context, lines []Line) (*RemoteCart, error)
	UpdateCart(ctx context.Context, handle string, lines []Line) (*RemoteCart, error)
}
