package gateway

import "testing"

func TestParseUnitPrice(t *testing.T) {
	cases := []struct {
		text   string
		amount float64
		parsed bool
	}{
		{"₹120/quintal/month", 120, true},
		{"₹95/quintal/month", 95, true},
		{"Rs 250 per quintal per month", 250, true},
		{"1500", 1500, true},
		{"call for price", UnparsedPriceSentinel, false},
		{"", UnparsedPriceSentinel, false},
	}

	for _, c := range cases {
		got := ParseUnitPrice(c.text)
		if got.Amount != c.amount || got.Parsed != c.parsed {
			t.Errorf("ParseUnitPrice(%q) = {%v %v}, want {%v %v}",
				c.text, got.Amount, got.Parsed, c.amount, c.parsed)
		}
	}
}

func TestParseUnitPriceTakesFirstInteger(t *testing.T) {
	got := ParseUnitPrice("₹120/quintal/month for 30 days")
	if got.Amount != 120 {
		t.Errorf("amount = %v, want first integer 120", got.Amount)
	}
}
