package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"19.99", "USD", "$19.99"},
		{"10.00", "EUR", "€10.00"},
		{"5.50", "GBP", "£5.50"},
		{"120.00", "SEK", "120.00 SEK"},
		{"", "USD", "$0.00"},
		{"7.25", "", "$7.25"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Fatalf("FormatMoney(%q, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
