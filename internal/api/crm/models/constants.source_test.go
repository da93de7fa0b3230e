package models

import "testing"

func TestNormalizeSource_AcceptedTokens(t *testing.T) {
	cases := map[string]string{
		"google":      CustomerSourceGoogle,
		"Google":      CustomerSourceGoogle,
		"  referral ": CustomerSourceReferral,
		"trade_show":  CustomerSourceTradeShow,
		"tradeshow":   CustomerSourceTradeShow,
		"Trade Show":  CustomerSourceTradeShow,
		"other":       CustomerSourceOther,
	}
	for token, want := range cases {
		if got := NormalizeSource(token); got != want {
			t.Errorf("NormalizeSource(%q) = %q, muốn %q", token, got, want)
		}
	}
}

func TestNormalizeSource_UnknownFallsBackToOther(t *testing.T) {
	for _, token := range []string{"", "facebook", "messe", "???"} {
		if got := NormalizeSource(token); got != CustomerSourceOther {
			t.Errorf("NormalizeSource(%q) = %q, token lạ phải về %q", token, got, CustomerSourceOther)
		}
	}
}
