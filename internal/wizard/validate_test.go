package wizard

import (
	"errors"
	"testing"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

func TestValidPostcode(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"SW1A 1AA", true},
		{"sw1a1aa", true},
		{"M1 1AE", true},
		{"B33 8TH", true},
		{"EC1A 1BB", true},
		{"12345", false},
		{"", false},
		{"SW1A 1A", false},
	}
	for _, tt := range tests {
		if got := ValidPostcode(tt.in); got != tt.want {
			t.Errorf("ValidPostcode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := NormalizePostcode(" sw1a1aa "); got != "SW1A 1AA" {
		t.Fatalf("NormalizePostcode = %q", got)
	}
}

func TestCheckDates(t *testing.T) {
	tests := []struct {
		name                 string
		delivery, collection domain.DateSpec
		ok                   bool
	}{
		{"both unset", "", "", false},
		{"collection unset", "2025-01-01", "", false},
		{"same day", "2025-01-01", "2025-01-01", false},
		{"next day", "2025-01-01", "2025-01-02", true},
		{"collection first", "2025-01-05", "2025-01-02", false},
		{"garbage", "soon", "2025-01-02", false},
		{"range delivery", "2025-01-01|2025-01-03", "2025-01-03", true},
		{"range before delivery", "2025-01-04|2025-01-06", "2025-01-03", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDates(tt.delivery, tt.collection)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, domain.ErrStepIncomplete) {
				t.Fatalf("expected ErrStepIncomplete, got %v", err)
			}
		})
	}
}

func TestCustomerChecks(t *testing.T) {
	if !ValidPhone("(020) 7946-0958") {
		t.Fatal("expected bracketed london number to pass")
	}
	if ValidPhone("12345") {
		t.Fatal("short phone should fail")
	}
	if err := checkCustomer(domain.Customer{Name: "A", Email: "a@b.co", Phone: "07700900123"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := checkCustomer(domain.Customer{Email: "a@b.co", Phone: "07700900123"}); err == nil {
		t.Fatal("expected missing name to fail")
	}
}

func TestWordCodeStable(t *testing.T) {
	a := WordCode(domain.DefaultLat, domain.DefaultLng)
	if a != WordCode(domain.DefaultLat, domain.DefaultLng) {
		t.Fatal("word code not deterministic")
	}
	if a == WordCode(53.4808, -2.2426) {
		t.Fatal("distant coordinates collided")
	}
}
