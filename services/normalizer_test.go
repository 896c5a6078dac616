package services

import (
	"errors"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Red Shirt", "red-shirt"},
		{"  Red   Shirt  ", "red-shirt"},
		{"Shoes & Boots!", "shoes-boots"},
		{"UPPER", "upper"},
		{"--Dash--", "dash"},
		{"Café con Leche", "caf-con-leche"},
		{"a_b", "a_b"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyStable(t *testing.T) {
	first := Slugify("Red Shirt 2024")
	for i := 0; i < 10; i++ {
		if got := Slugify("Red Shirt 2024"); got != first {
			t.Fatalf("Slugify not stable: got %q then %q", first, got)
		}
	}
}

func TestNormalizeRowEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t"} {
		_, err := NormalizeRow(RawRow{"name": name, "price": "5"})
		if !errors.Is(err, ErrEmptyName) {
			t.Errorf("name=%q: expected ErrEmptyName, got %v", name, err)
		}
	}
}

func TestNormalizeRowInvalidPrice(t *testing.T) {
	for _, price := range []string{"abc", "", "NaN", "+Inf"} {
		_, err := NormalizeRow(RawRow{"name": "Widget", "price": price})
		if !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("price=%q: expected ErrInvalidPrice, got %v", price, err)
		}
	}
}

func TestNormalizeRowPriceExact(t *testing.T) {
	candidate, err := NormalizeRow(RawRow{"name": "Widget", "price": "19.99"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate.Price != 19.99 {
		t.Fatalf("expected price 19.99, got %v", candidate.Price)
	}
}

func TestNormalizeRowStock(t *testing.T) {
	cases := []struct {
		stock   string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"7", 7, false},
		{"12.0", 12, false},
		{"abc", 0, true},
	}
	for _, tc := range cases {
		candidate, err := NormalizeRow(RawRow{"name": "Widget", "price": "1", "stock": tc.stock})
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidStock) {
				t.Errorf("stock=%q: expected ErrInvalidStock, got %v", tc.stock, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("stock=%q: unexpected error: %v", tc.stock, err)
			continue
		}
		if candidate.Stock != tc.want {
			t.Errorf("stock=%q: got %d, want %d", tc.stock, candidate.Stock, tc.want)
		}
	}
}

func TestNormalizeRowActive(t *testing.T) {
	cases := []struct {
		active string
		want   bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"si", true},
		{"Sí", true},
		{"yes", true},
		{"2", true}, // non-zero number
		{"0", false},
		{"false", false},
		{"maybe", false},
	}
	for _, tc := range cases {
		candidate, err := NormalizeRow(RawRow{"name": "Widget", "price": "1", "active": tc.active})
		if err != nil {
			t.Fatalf("active=%q: unexpected error: %v", tc.active, err)
		}
		if candidate.Active != tc.want {
			t.Errorf("active=%q: got %v, want %v", tc.active, candidate.Active, tc.want)
		}
	}

	// Missing active defaults to true.
	candidate, err := NormalizeRow(RawRow{"name": "Widget", "price": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !candidate.Active {
		t.Fatal("expected active to default to true")
	}
}

func TestNormalizeRowCategoryRefs(t *testing.T) {
	candidate, err := NormalizeRow(RawRow{
		"name":       "Widget",
		"price":      "1",
		"categories": "tops; shoes |running,, shoes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"tops", "shoes", "running", "shoes"}
	if len(candidate.CategoryRefs) != len(want) {
		t.Fatalf("got refs %v, want %v", candidate.CategoryRefs, want)
	}
	for i, ref := range want {
		if candidate.CategoryRefs[i] != ref {
			t.Errorf("ref[%d] = %q, want %q", i, candidate.CategoryRefs[i], ref)
		}
	}
}

func TestNormalizeRowSlugDerivation(t *testing.T) {
	candidate, err := NormalizeRow(RawRow{"name": "  Red Shirt ", "price": "10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidate.Slug != "red-shirt" {
		t.Fatalf("expected slug red-shirt, got %q", candidate.Slug)
	}
	if candidate.Name != "Red Shirt" {
		t.Fatalf("expected trimmed name, got %q", candidate.Name)
	}
}
