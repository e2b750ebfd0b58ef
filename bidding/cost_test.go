package bidding

import (
	"errors"
	"testing"
)

func TestEstimateCost(t *testing.T) {
	// 300 kg = 3 quintals, 45 days bills as 2 months: 100 * 3 * 2 = 600
	est, err := EstimateCost(100, 300, 45, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Quintals != 3 {
		t.Errorf("quintals = %v, want 3", est.Quintals)
	}
	if est.Months != 2 {
		t.Errorf("months = %d, want 2", est.Months)
	}
	if est.EstimatedTotal != 600 {
		t.Errorf("estimated total = %v, want 600", est.EstimatedTotal)
	}
	if !est.WithinBudget {
		t.Error("no budget set should always be within budget")
	}
}

func TestEstimateCostFractionalQuintals(t *testing.T) {
	// 250 kg = 2.5 quintals, 30 days = 1 month: 80 * 2.5 = 200
	est, err := EstimateCost(80, 250, 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Quintals != 2.5 {
		t.Errorf("quintals = %v, want 2.5", est.Quintals)
	}
	if est.Months != 1 {
		t.Errorf("months = %d, want 1", est.Months)
	}
	if est.EstimatedTotal != 200 {
		t.Errorf("estimated total = %v, want 200", est.EstimatedTotal)
	}
}

func TestEstimateCostShortDurationBillsOneMonth(t *testing.T) {
	est, err := EstimateCost(100, 100, 3, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.Months != 1 {
		t.Errorf("months = %d, want 1", est.Months)
	}
}

func TestEstimateCostBudgetCompliance(t *testing.T) {
	over := 500.0
	est, err := EstimateCost(100, 300, 45, &over)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.WithinBudget {
		t.Error("600 against budget 500 should be over budget")
	}

	under := 700.0
	est, err = EstimateCost(100, 300, 45, &under)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !est.WithinBudget {
		t.Error("600 against budget 700 should be within budget")
	}

	exact := 600.0
	est, err = EstimateCost(100, 300, 45, &exact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !est.WithinBudget {
		t.Error("600 against budget 600 should be within budget")
	}
}

func TestEstimateCostInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		quantity float64
		days     int
	}{
		{"zero duration", 100, 300, 0},
		{"negative duration", 100, 300, -5},
		{"zero quantity", 100, 0, 30},
		{"zero price", 0, 300, 30},
	}
	for _, c := range cases {
		if _, err := EstimateCost(c.price, c.quantity, c.days, nil); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}
