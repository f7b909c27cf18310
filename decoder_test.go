package cubeview

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeSingleByteIndex(t *testing.T) {
	dec := NewDecoder()

	cases := []struct {
		payload []byte
		want    []string
	}{
		{[]byte{0}, []string{"U"}},
		{[]byte{1}, []string{"R"}},
		{[]byte{5}, []string{"B"}},
		{[]byte{6}, []string{"U'"}},
		{[]byte{7}, []string{"R'"}},
		{[]byte{11}, []string{"B'"}},

		// Out of table: no move, never a guess.
		{[]byte{12}, nil},
		{[]byte{13}, nil},
		{[]byte{0xFF}, nil},
	}

	for _, c := range cases {
		got := dec.Decode(c.payload)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Decode(%v) = %v, want %v", c.payload, got, c.want)
		}
	}
}

func TestDecodeText(t *testing.T) {
	dec := NewDecoder()

	got := dec.Decode([]byte("R U R'"))
	want := []string{"R", "U", "R'"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(\"R U R'\") = %v, want %v", got, want)
	}

	// Lowercase faces normalize; separators may be commas or semicolons.
	got = dec.Decode([]byte("r,u';f2"))
	want = []string{"R", "U'", "F2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(\"r,u';f2\") = %v, want %v", got, want)
	}
}

func TestDecodeTextWholePayloadValidity(t *testing.T) {
	dec := NewDecoder()

	// One bad token invalidates the whole payload; no partial emission,
	// and no binary strategy may reinterpret the text.
	if got := dec.Decode([]byte("R U X")); len(got) != 0 {
		t.Errorf("Decode(\"R U X\") = %v, want []", got)
	}
	if got := dec.Decode([]byte("R U W'")); len(got) != 0 {
		t.Errorf("Decode(\"R U W'\") = %v, want []", got)
	}
}

func TestDecodeTextExtendedTokensPassThrough(t *testing.T) {
	dec := NewDecoder()

	// Slice and rotation tokens are valid text but are rejected later,
	// when a consumer tries to map them to a layer.
	got := dec.Decode([]byte("R M x U"))
	want := []string{"R", "M", "x", "U"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(\"R M x U\") = %v, want %v", got, want)
	}
	if _, err := ParseMove("M"); err == nil {
		t.Error("ParseMove should reject slice token M")
	}
}

func TestDecodeByteSequence(t *testing.T) {
	dec := NewDecoder()

	got := dec.Decode([]byte{1, 0, 7, 6})
	want := []string{"R", "U", "R'", "U'"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode(%v) = %v, want %v", []byte{1, 0, 7, 6}, got, want)
	}
}

func TestDecodeNibblePacked(t *testing.T) {
	dec := NewDecoder()

	// 0x0D: face 5 (B), turn 1 (') -> B'. 0x11: face 1 (R), turn 2 -> R2.
	// A byte over 11 rules out the byte-sequence strategy.
	got := dec.Decode([]byte{0x0D, 0x11})
	want := []string{"B'", "R2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode([0x0D 0x11]) = %v, want %v", got, want)
	}
}

func TestDecodeNibblePackedSkipsInvalidBytes(t *testing.T) {
	dec := NewDecoder()

	// Face values 6-7 and the reserved turn value 3 skip the byte
	// without halting the scan.
	got := dec.Decode([]byte{0x0D, 0x06, 0x1A, 0x11})
	want := []string{"B'", "R2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode with skip bytes = %v, want %v", got, want)
	}
}

func TestDecodeNibblePackedRejectsHighBits(t *testing.T) {
	dec := NewDecoder()

	// Bytes with the top three bits set do not fit the packed layout;
	// the payload decodes to nothing rather than garbage moves.
	if got := dec.Decode([]byte{0x52, 0x20}); len(got) != 0 {
		t.Errorf("Decode([0x52 0x20]) = %v, want []", got)
	}
}

func TestDecodeStrategyPriority(t *testing.T) {
	dec := NewDecoder()

	// 0x52 is ASCII 'R': the text strategy wins before any binary one.
	got := dec.Decode([]byte{0x52})
	want := []string{"R"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode([0x52]) = %v, want %v", got, want)
	}

	// A single byte 7 is index R', not a nibble-packed R'.
	got = dec.Decode([]byte{7})
	want = []string{"R'"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Decode([7]) = %v, want %v", got, want)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	dec := NewDecoder()
	if got := dec.Decode(nil); len(got) != 0 {
		t.Errorf("Decode(nil) = %v, want []", got)
	}
	if got := dec.Decode([]byte{}); len(got) != 0 {
		t.Errorf("Decode(empty) = %v, want []", got)
	}
}

func TestDecodeWarningCallback(t *testing.T) {
	var warned [][]byte
	dec := NewDecoder(WithDecodeWarning(func(payload []byte) {
		warned = append(warned, payload)
	}))

	dec.Decode([]byte{12})
	dec.Decode([]byte("R U R'")) // matches; no warning
	dec.Decode(nil)

	if len(warned) != 2 {
		t.Fatalf("warn callback fired %d times, want 2", len(warned))
	}
	if !reflect.DeepEqual(warned[0], []byte{12}) {
		t.Errorf("first warning payload = %v, want [12]", warned[0])
	}
}

func TestDecodeStrict(t *testing.T) {
	dec := NewDecoder()

	tokens, err := dec.DecodeStrict([]byte{0})
	if err != nil {
		t.Fatalf("DecodeStrict([0]) error: %v", err)
	}
	if !reflect.DeepEqual(tokens, []string{"U"}) {
		t.Errorf("DecodeStrict([0]) = %v, want [U]", tokens)
	}

	if _, err := dec.DecodeStrict([]byte{12}); !errors.Is(err, ErrNoStrategy) {
		t.Errorf("DecodeStrict([12]) error = %v, want ErrNoStrategy", err)
	}
}

func TestDecoderWithCustomStrategies(t *testing.T) {
	fixed := Strategy{
		Name: "fixed",
		Decode: func(payload []byte) ([]string, bool) {
			return []string{"U2"}, true
		},
	}
	dec := NewDecoder(WithStrategies([]Strategy{fixed}))

	got := dec.Decode([]byte{0xFF})
	if !reflect.DeepEqual(got, []string{"U2"}) {
		t.Errorf("custom strategy Decode = %v, want [U2]", got)
	}
}
