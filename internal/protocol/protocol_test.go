package protocol

import (
	"bytes"
	"errors"
	"testing"
)

// buildFrame assembles a valid frame around a type and payload.
func buildFrame(msgType byte, payload []byte) []byte {
	data := []byte{FramePrefix, byte(len(payload) + 4), msgType}
	data = append(data, payload...)
	var checksum byte
	for _, b := range data {
		checksum += b
	}
	return append(data, checksum, FrameSuffix1, FrameSuffix2)
}

func TestParseValidFrame(t *testing.T) {
	data := buildFrame(MsgTypeRotation, []byte{0x02})

	msg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Type != MsgTypeRotation {
		t.Errorf("Type = 0x%02X, want 0x%02X", msg.Type, MsgTypeRotation)
	}
	if !bytes.Equal(msg.Payload, []byte{0x02}) {
		t.Errorf("Payload = %v, want [0x02]", msg.Payload)
	}
}

func TestParseMultiBytePayload(t *testing.T) {
	payload := []byte{0x01, 0x00, 0x07, 0x06}
	msg, err := Parse(buildFrame(MsgTypeState, payload))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !bytes.Equal(msg.Payload, payload) {
		t.Errorf("Payload = %v, want %v", msg.Payload, payload)
	}
}

func TestParseTooShort(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {FramePrefix}, {FramePrefix, 0x05, 0x01, 0x32}} {
		if _, err := Parse(data); err == nil {
			t.Errorf("Parse(%v) should fail on short input", data)
		}
	}
}

func TestParseLengthBelowMinimum(t *testing.T) {
	// Length bytes 0-3 describe frames too small to carry a type byte.
	// 0x2A 0x03 0x2D 0x0D 0x0A has a consistent checksum and suffix but
	// no room for a type; it must be rejected, not sliced out of range.
	data := []byte{FramePrefix, 0x03, 0x2D, FrameSuffix1, FrameSuffix2}
	if _, err := Parse(data); !errors.Is(err, ErrMessageTooShort) {
		t.Errorf("error = %v, want ErrMessageTooShort", err)
	}

	for _, length := range []byte{0x00, 0x01, 0x02} {
		data := []byte{FramePrefix, length, 0x00, 0x00, 0x00}
		if _, err := Parse(data); err == nil {
			t.Errorf("Parse with length byte %d should fail", length)
		}
	}
}

func TestParseMinimalFrame(t *testing.T) {
	// The smallest legal frame is a type with no payload.
	msg, err := Parse(buildFrame(MsgTypeBattery, nil))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.Type != MsgTypeBattery {
		t.Errorf("Type = 0x%02X, want 0x%02X", msg.Type, MsgTypeBattery)
	}
	if len(msg.Payload) != 0 {
		t.Errorf("Payload = %v, want empty", msg.Payload)
	}
}

func TestParseBadPrefix(t *testing.T) {
	data := buildFrame(MsgTypeRotation, []byte{0x02})
	data[0] = 0x2B
	if _, err := Parse(data); !errors.Is(err, ErrInvalidPrefix) {
		t.Errorf("error = %v, want ErrInvalidPrefix", err)
	}
}

func TestParseBadSuffix(t *testing.T) {
	data := buildFrame(MsgTypeRotation, []byte{0x02})
	data[len(data)-1] = 0x00
	if _, err := Parse(data); !errors.Is(err, ErrInvalidSuffix) {
		t.Errorf("error = %v, want ErrInvalidSuffix", err)
	}
}

func TestParseBadChecksum(t *testing.T) {
	data := buildFrame(MsgTypeRotation, []byte{0x02})
	data[len(data)-3]++
	if _, err := Parse(data); !errors.Is(err, ErrInvalidChecksum) {
		t.Errorf("error = %v, want ErrInvalidChecksum", err)
	}
}

func TestParseTruncatedLength(t *testing.T) {
	data := buildFrame(MsgTypeState, []byte{0x01, 0x02, 0x03})
	data[1] = 0x20 // claims more bytes than delivered
	if _, err := Parse(data); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("error = %v, want ErrInvalidLength", err)
	}
}

func TestBuildCommand(t *testing.T) {
	got := BuildCommand(CmdRequestState)
	want := []byte{0x2A, 0x01, 0x33, 0x5E, 0x0D, 0x0A}
	if !bytes.Equal(got, want) {
		t.Errorf("BuildCommand(CmdRequestState) = % X, want % X", got, want)
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		msgType byte
		want    string
	}{
		{MsgTypeRotation, "rotation"},
		{MsgTypeState, "state"},
		{MsgTypeBattery, "battery"},
		{0x7F, "unknown_0x7F"},
	}
	for _, c := range cases {
		if got := TypeName(c.msgType); got != c.want {
			t.Errorf("TypeName(0x%02X) = %q, want %q", c.msgType, got, c.want)
		}
	}
}
