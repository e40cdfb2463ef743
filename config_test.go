package pageread

import "testing"

func TestParsePreprocess(t *testing.T) {
	cases := []struct {
		in   string
		want Preprocess
		ok   bool
	}{
		{"none", PreprocessNone, true},
		{"binarize", PreprocessBinarize, true},
		{"threshold", PreprocessThreshold, true},
		{"", PreprocessNone, false},
		{"otsu", PreprocessNone, false},
	}
	for _, tc := range cases {
		got, ok := ParsePreprocess(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePreprocess(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPreprocessString_RoundTrips(t *testing.T) {
	for _, p := range []Preprocess{PreprocessNone, PreprocessBinarize, PreprocessThreshold} {
		got, ok := ParsePreprocess(p.String())
		if !ok || got != p {
			t.Errorf("mode %d did not round-trip through %q", p, p.String())
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(nil, nil)
	if cfg.WordsPerBatch != 64 {
		t.Errorf("default batch size %d, want 64", cfg.WordsPerBatch)
	}
	if cfg.Pad.Top != 10 || cfg.Pad.Left != 10 || cfg.Pad.Bottom != 10 || cfg.Pad.Right != 10 {
		t.Errorf("default padding %+v, want 10 on every side", cfg.Pad)
	}
	if cfg.Segmentation.MarkerThreshold != 0.3 {
		t.Errorf("default marker threshold %v, want 0.3", cfg.Segmentation.MarkerThreshold)
	}
}
