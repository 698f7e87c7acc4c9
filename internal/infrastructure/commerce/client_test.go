package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

func sampleLines() []cart.Line {
	return []cart.Line{{
		Ref:      cart.ProductRef{ProductID: "p1", VariantID: "v1"},
		Options:  []cart.Option{{Key: "size", Value: "M"}},
		Quantity: 2,
	}}
}

func cartJSON() map[string]any {
	return map[string]any{
		"id":          "gid://cart/abc",
		"checkoutUrl": "https://pay.example.com/c/abc",
		"lines": []map[string]any{{
			"productId": "p1",
			"variantId": "v1",
			"title":     "Chikankari Kurta",
			"quantity":  2,
			"unitPrice": "1300",
			"currency":  "INR",
			"attributes": []map[string]string{
				{"key": "size", "value": "M"},
			},
		}},
	}
}

func TestCreateCart(t *testing.T) {
	var gotToken string
	var gotBody graphqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Storefront-Access-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"cartCreate": map[string]any{"cart": cartJSON()},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123")
	rc, err := client.CreateCart(context.Background(), sampleLines())
	require.NoError(t, err)

	assert.Equal(t, "tok-123", gotToken)
	assert.Contains(t, gotBody.Query, "cartCreate")
	assert.Equal(t, "gid://cart/abc", rc.Handle)
	assert.Equal(t, "https://pay.example.com/c/abc", rc.CheckoutURL)
	require.Len(t, rc.Lines, 1)
	assert.Equal(t, "Chikankari Kurta", rc.Lines[0].Name)
	assert.True(t, rc.Lines[0].UnitPrice.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, []cart.Option{{Key: "size", Value: "M"}}, rc.Lines[0].Options)
}

func TestUpdateCart_SendsHandle(t *testing.T) {
	var gotBody graphqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"cartLinesReplace": map[string]any{"cart": cartJSON()},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123")
	_, err := client.UpdateCart(context.Background(), "gid://cart/abc", sampleLines())
	require.NoError(t, err)

	assert.Contains(t, gotBody.Query, "cartLinesReplace")
	assert.Equal(t, "gid://cart/abc", gotBody.Variables["cartId"])
}

func TestCreateCart_UserErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"cartCreate": map[string]any{
					"cart": nil,
					"userErrors": []map[string]any{
						{"field": []string{"lines"}, "message": "merchandise not found"},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123")
	_, err := client.CreateCart(context.Background(), sampleLines())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merchandise not found")
}

func TestCreateCart_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "access denied"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-token")
	_, err := client.CreateCart(context.Background(), sampleLines())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestCreateCart_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok-123")
	_, err := client.CreateCart(context.Background(), sampleLines())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
