package stats

import "testing"

func TestStars_Boundaries(t *testing.T) {
	cases := []struct {
		name string
		p    float64
		want string
	}{
		{"well below four-star bound", 0.00009999, "****"},
		{"exactly at four-star bound drops a tier", 0.0001, "***"},
		{"exactly at three-star bound drops a tier", 0.001, "**"},
		{"exactly at two-star bound drops a tier", 0.01, "*"},
		{"just under significance", 0.0499, "*"},
		{"exactly 0.05 is not significant", 0.05, "ns"},
		{"clearly not significant", 0.5, "ns"},
		{"p of one", 1.0, "ns"},
		{"p of zero", 0.0, "****"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stars(tc.p); got != tc.want {
				t.Errorf("Stars(%v) = %q, want %q", tc.p, got, tc.want)
			}
		})
	}
}

func TestStars_Monotonic(t *testing.T) {
	tier := map[string]int{"****": 4, "***": 3, "**": 2, "*": 1, "ns": 0}

	prev := 5
	for p := 0.0; p < 1.0; p += 0.000025 {
		code := Stars(p)
		rank, ok := tier[code]
		if !ok {
			t.Fatalf("Stars(%v) returned unexpected code %q", p, code)
		}
		if rank > prev {
			t.Fatalf("Stars is not monotonic: p=%v got tier %d after tier %d", p, rank, prev)
		}
		prev = rank
	}
}

func TestDisplayP(t *testing.T) {
	cases := []struct {
		name string
		p    float64
		mode DisplayMode
		want string
	}{
		{"stars mode", 0.03, DisplayStars, "*"},
		{"value mode", 0.03, DisplayValue, "p=0.0300"},
		{"value mode tiny p", 0.00005, DisplayValue, "p<0.0001"},
		{"both mode", 0.03, DisplayBoth, "*\np=0.0300"},
		{"both mode tiny p", 0.00005, DisplayBoth, "****\np<0.0001"},
		{"not significant value", 0.5, DisplayValue, "p=0.5000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayP(tc.p, tc.mode); got != tc.want {
				t.Errorf("DisplayP(%v, %q) = %q, want %q", tc.p, tc.mode, got, tc.want)
			}
		})
	}
}
