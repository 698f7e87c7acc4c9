package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

var _ cart.RemoteCartClient = (*Client)(nil)

// Client talks to the commerce backend's GraphQL storefront API. It
// implements the RemoteCartClient port; for tests a fake can be injected.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

// NewClient builds the GraphQL client. The backend can be slow under
// load, hence the generous timeout.
func NewClient(endpoint, accessToken string) *Client {
	return &Client{
		endpoint:    endpoint,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

const cartCreateMutation = `
mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart { id checkoutUrl lines { productId variantId title quantity unitPrice currency attributes { key value } } }
    userErrors { field message }
  }
}`

const cartLinesReplaceMutation = `
mutation cartLinesReplace($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesReplace(cartId: $cartId, lines: $lines) {
    cart { id checkoutUrl lines { productId variantId title quantity unitPrice currency attributes { key value } } }
    userErrors { field message }
  }
}`

// ── Wire shapes ──────────────────────────────────────────────────────────────

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data struct {
		CartCreate       *cartPayload `json:"cartCreate"`
		CartLinesReplace *cartPayload `json:"cartLinesReplace"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type cartPayload struct {
	Cart       *wireCart   `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type wireCart struct {
	ID          string     `json:"id"`
	CheckoutURL string     `json:"checkoutUrl"`
	Lines       []wireLine `json:"lines"`
}

type wireLine struct {
	ProductID  string          `json:"productId"`
	VariantID  string          `json:"variantId,omitempty"`
	Title      string          `json:"title,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Currency   string          `json:"currency"`
	Attributes []wireAttribute `json:"attributes,omitempty"`
}

type wireAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ── Port implementation ──────────────────────────────────────────────────────

// CreateCart registers a new remote cart and returns its handle,
// checkout URL and server-resolved lines.
func (c *Client) CreateCart(ctx context.Context, lines []cart.Line) (*cart.RemoteCart, error) {
	payload, err := c.do(ctx, graphqlRequest{
		Query:     cartCreateMutation,
		Variables: map[string]any{"input": map[string]any{"lines": toWireLines(lines)}},
	}, func(r *graphqlResponse) *cartPayload { return r.Data.CartCreate })
	if err != nil {
		return nil, err
	}
	return toRemoteCart(payload.Cart), nil
}

// UpdateCart replaces the lines of an existing remote cart.
func (c *Client) UpdateCart(ctx context.Context, handle string, lines []cart.Line) (*cart.RemoteCart, error) {
	payload, err := c.do(ctx, graphqlRequest{
		Query:     cartLinesReplaceMutation,
		Variables: map[string]any{"cartId": handle, "lines": toWireLines(lines)},
	}, func(r *graphqlResponse) *cartPayload { return r.Data.CartLinesReplace })
	if err != nil {
		return nil, err
	}
	return toRemoteCart(payload.Cart), nil
}

func (c *Client) do(ctx context.Context, reqBody graphqlRequest, pick func(*graphqlResponse) *cartPayload) (*cartPayload, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("commerce: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("commerce: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("commerce: timeout or cancellation: %w", ctx.Err())
		}
		return nil, fmt.Errorf("commerce: HTTP call failed: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // max 1 MB
	if err != nil {
		return nil, fmt.Errorf("commerce: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("commerce: unexpected status %d: %s", resp.StatusCode, string(rawBody))
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(rawBody, &gqlResp); err != nil {
		return nil, fmt.Errorf("commerce: decode response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("commerce: graphql errors: %s", strings.Join(msgs, "; "))
	}

	payload := pick(&gqlResp)
	if payload == nil {
		return nil, fmt.Errorf("commerce: empty or unexpected response: %s", string(rawBody))
	}
	if len(payload.UserErrors) > 0 {
		msgs := make([]string, 0, len(payload.UserErrors))
		for _, e := range payload.UserErrors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("commerce: rejected: %s", strings.Join(msgs, "; "))
	}
	if payload.Cart == nil {
		return nil, fmt.Errorf("commerce: response without cart: %s", string(rawBody))
	}
	return payload, nil
}

// ── Mapping ──────────────────────────────────────────────────────────────────

func toWireLines(lines []cart.Line) []wireLine {
	out := make([]wireLine, 0, len(lines))
	for _, l := range lines {
		wl := wireLine{
			ProductID: l.Ref.ProductID,
			VariantID: l.Ref.VariantID,
			Quantity:  l.Quantity,
		}
		for _, o := range l.Options {
			wl.Attributes = append(wl.Attributes, wireAttribute{Key: o.Key, Value: o.Value})
		}
		out = append(out, wl)
	}
	return out
}

func toRemoteCart(wc *wireCart) *cart.RemoteCart {
	rc := &cart.RemoteCart{
		Handle:      wc.ID,
		CheckoutURL: wc.CheckoutURL,
	}
	for _, wl := range wc.Lines {
		line := cart.Line{
			Ref:       cart.ProductRef{ProductID: wl.ProductID, VariantID: wl.VariantID},
			Name:      wl.Title,
			Quantity:  wl.Quantity,
			UnitPrice: wl.UnitPrice,
			Currency:  wl.Currency,
		}
		for _, a := range wl.Attributes {
			line.Options = append(line.Options, cart.Option{Key: a.Key, Value: a.Value})
		}
		rc.Lines = append(rc.Lines, line)
	}
	return rc
}
