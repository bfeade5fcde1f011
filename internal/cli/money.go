package cli

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatMoney renders a server-provided decimal string with its currency.
// The amount is never parsed or recomputed; the server owns all monetary
// values.
func FormatMoney(amount, currency string) string {
	if amount == "" {
		amount = "0.00"
	}
	if currency == "" {
		currency = "USD"
	}
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + amount
	}
	return amount + " " + currency
}
