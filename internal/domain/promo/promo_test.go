package promo

import (
	"errors"
	"testing"
	"time"

	"github.com/atelier-cloud/catalog/internal/domain"
)

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	end := now.AddDate(0, 1, 0)
	p, err := New("pr1", "SUMMER25", TypePercentage, 25, 100, &end, now)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Code() != "SUMMER25" || p.Uses() != 0 {
		t.Errorf("unexpected promo: code=%q uses=%d", p.Code(), p.Uses())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		typ   Type
		value float64
	}{
		{"lowercase code", "summer25", TypePercentage, 25},
		{"too short code", "AB", TypeFixed, 5},
		{"bad type", "SUMMER25", Type("bogo"), 25},
		{"zero value", "SUMMER25", TypeFixed, 0},
		{"percentage over 100", "SUMMER25", TypePercentage, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("pr1", tt.code, tt.typ, tt.value, 0, nil, now); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	active := Reconstruct("pr1", "CODE1", TypeFixed, 5, 0, 3, &future, now)
	if active.Status(now) != StatusActive {
		t.Error("expected active")
	}

	expired := Reconstruct("pr2", "CODE2", TypeFixed, 5, 0, 0, &past, now)
	if expired.Status(now) != StatusExpired {
		t.Error("expected expired after end date")
	}

	exhausted := Reconstruct("pr3", "CODE3", TypeFixed, 5, 3, 3, nil, now)
	if exhausted.Status(now) != StatusExpired {
		t.Error("expected expired when uses reach max")
	}
}

func TestDiscount(t *testing.T) {
	pct := Reconstruct("pr1", "PCT20", TypePercentage, 20, 0, 0, nil, now)
	if got := pct.Discount(50); got != 10 {
		t.Errorf("percentage discount = %v, want 10", got)
	}

	fixed := Reconstruct("pr2", "OFF15", TypeFixed, 15, 0, 0, nil, now)
	if got := fixed.Discount(50); got != 15 {
		t.Errorf("fixed discount = %v, want 15", got)
	}
	// Never more than the order amount.
	if got := fixed.Discount(10); got != 10 {
		t.Errorf("capped discount = %v, want 10", got)
	}
}

func TestWithUse(t *testing.T) {
	p := Reconstruct("pr1", "CODE1", TypeFixed, 5, 2, 1, nil, now)
	used := p.WithUse()
	if used.Uses() != 2 {
		t.Errorf("uses = %d, want 2", used.Uses())
	}
	if p.Uses() != 1 {
		t.Error("original mutated")
	}
	if used.Redeemable(now) {
		t.Error("exhausted code must not be redeemable")
	}
}
