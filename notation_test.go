package cubeview

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"R", "R"},
		{"r", "R"},
		{"R'", "R'"},
		{"r'", "R'"},
		{"R2", "R2"},
		{"u2", "U2"},
		{"f", "F"},
		{"b'", "B'"},
		{"d", "D"},
		{"l2", "L2"},

		// Fail-open: anything outside the pattern is returned unchanged.
		{"", ""},
		{"X", "X"},
		{"M", "M"},
		{"R3", "R3"},
		{"R''", "R''"},
		{"RU", "RU"},
		{"2", "2"},
		{"'", "'"},
	}

	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	tokens := []string{"R", "r", "R'", "u2", "f", "X", "R3", "", "M2", "xyz"}
	for _, tok := range tokens {
		once := Normalize(tok)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", tok, twice, once)
		}
	}
}

func TestIsExtendedToken(t *testing.T) {
	valid := []string{"R", "r", "U'", "b2", "M", "E", "S", "M'", "S2", "x", "y", "z", "x'", "z2"}
	for _, tok := range valid {
		if !isExtendedToken(tok) {
			t.Errorf("isExtendedToken(%q) = false, want true", tok)
		}
	}

	invalid := []string{"", "X", "Y", "Z", "m", "e", "s", "W", "R3", "R''", "RU", "2'"}
	for _, tok := range invalid {
		if isExtendedToken(tok) {
			t.Errorf("isExtendedToken(%q) = true, want false", tok)
		}
	}
}
