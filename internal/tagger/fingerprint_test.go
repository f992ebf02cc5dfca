package tagger

import (
	"testing"
)

func TestTokens_Normalization(t *testing.T) {
	tokens := Tokens("Fed signals potential rate-cut, after CPI cooling in 2024!")

	want := []string{"fed", "signals", "potential", "ratecut", "cpi", "cooling"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %v, got %v", want, tokens)
	}
	for i, tok := range want {
		if tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, tokens[i])
		}
	}
}

func TestTokens_DropsDuplicatesAndShortWords(t *testing.T) {
	tokens := Tokens("up up and away in my AI AI world")
	for i, tok := range tokens {
		for j := i + 1; j < len(tokens); j++ {
			if tokens[j] == tok {
				t.Errorf("duplicate token %q", tok)
			}
		}
		if len(tok) <= 2 {
			t.Errorf("short token %q survived", tok)
		}
	}
}

func TestFingerprint_OrderInsensitive(t *testing.T) {
	a := Fingerprint("SPY", "rates pause fed signals")
	b := Fingerprint("SPY", "fed signals rates pause")
	if a != b {
		t.Error("fingerprint must not depend on token order")
	}
}

func TestFingerprint_TickerScoped(t *testing.T) {
	a := Fingerprint("SPY", "fed signals rate pause")
	b := Fingerprint("QQQ", "fed signals rate pause")
	if a == b {
		t.Error("fingerprints for different tickers should differ")
	}
	if Fingerprint("spy", "fed signals rate pause") != a {
		t.Error("ticker case must not change the fingerprint")
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"fed", "pause"}, []string{"fed", "pause"}, 1.0},
		{"disjoint", []string{"fed"}, []string{"nvda"}, 0.0},
		{"half overlap", []string{"fed", "pause"}, []string{"fed", "hike"}, 1.0 / 3.0},
		{"both empty", nil, nil, 1.0},
		{"one empty", []string{"fed"}, nil, 0.0},
	}
	for _, tt := range tests {
		if got := Jaccard(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Jaccard = %.4f, want %.4f", tt.name, got, tt.want)
		}
	}
}

func TestBitSimilarity(t *testing.T) {
	if got := BitSimilarity(0xDEADBEEF, 0xDEADBEEF); got != 1.0 {
		t.Errorf("identical hashes: expected 1.0, got %.4f", got)
	}
	// One flipped bit out of 64.
	if got := BitSimilarity(0, 1); got != 1.0-1.0/64 {
		t.Errorf("single-bit difference: expected %.6f, got %.6f", 1.0-1.0/64, got)
	}
	if got := BitSimilarity(0, ^uint64(0)); got != 0.0 {
		t.Errorf("inverted hashes: expected 0.0, got %.4f", got)
	}
}
