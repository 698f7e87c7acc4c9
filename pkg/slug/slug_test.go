package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aaryaethnics/storefront-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Sarees", "sarees"},
		{"spaces", "Lehenga Choli", "lehenga-choli"},
		{"diacritics", "Bandhanī Dupattā", "bandhani-dupatta"},
		{"punctuation", "Men's Kurta & Pyjama", "men-s-kurta-pyjama"},
		{"leading trailing", "  Festive Wear  ", "festive-wear"},
		{"digits", "Size 42 Sherwani", "size-42-sherwani"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.in))
		})
	}
}
