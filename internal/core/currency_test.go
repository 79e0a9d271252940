package core

import "testing"

func TestIsSupportedCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "GBP", "JPY", "CHF"} {
		if !IsSupportedCurrency(code) {
			t.Fatalf("%s should be supported", code)
		}
	}
	for _, code := range []string{"", "usd", "US", "ZZZ"} {
		if IsSupportedCurrency(code) {
			t.Fatalf("%s should not be supported", code)
		}
	}
}

func TestReferenceCurrencyIsSupported(t *testing.T) {
	if !IsSupportedCurrency(ReferenceCurrency) {
		t.Fatal("reference currency missing from supported set")
	}
}
