package cubeview

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Strategy is one interpretation of a raw notification payload.
// Decode returns the canonical tokens and true only when the payload is
// fully valid under this encoding; partial validity must return false
// so the next strategy gets a chance.
//
// Smart-cube firmwares disagree on move encodings, and some are only
// known from reverse engineering, so strategies are named and swappable
// rather than hard-coded facts.
type Strategy struct {
	Name   string
	Decode func(payload []byte) ([]string, bool)
}

// indexTable maps byte values 0-11 to move tokens: indices 0-5 are
// quarter turns, 6-11 their inverses.
var indexTable = [12]string{
	"U", "R", "F", "D", "L", "B",
	"U'", "R'", "F'", "D'", "L'", "B'",
}

// nibbleFaces maps the low three bits of a nibble-packed byte to a face.
var nibbleFaces = [6]string{"U", "R", "F", "D", "L", "B"}

// DefaultStrategies returns the built-in strategies in priority order:
// text, single-byte index, byte-sequence index, nibble-packed.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "text", Decode: decodeText},
		{Name: "single-byte", Decode: decodeSingleByte},
		{Name: "byte-sequence", Decode: decodeByteSequence},
		{Name: "nibble-packed", Decode: decodeNibblePacked},
	}
}

// Decoder turns raw notification payloads into canonical move tokens.
// It tries its strategies in order and stops at the first that yields a
// non-empty, fully-valid result. A payload matching no strategy decodes
// to an empty slice: malformed input is dropped, never fatal, since a
// lost move merely desynchronizes the virtual cube until the next reset.
type Decoder struct {
	strategies []Strategy
	warn       func(payload []byte)
}

// NewDecoder creates a decoder with the default strategy chain.
func NewDecoder(opts ...Option) *Decoder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	strategies := cfg.strategies
	if strategies == nil {
		strategies = DefaultStrategies()
	}

	return &Decoder{
		strategies: strategies,
		warn:       cfg.decodeWarn,
	}
}

// Decode decodes one payload into zero or more canonical move tokens.
// An unrecognized payload yields an empty slice and fires the warn
// callback, if one is configured.
func (d *Decoder) Decode(payload []byte) []string {
	for _, s := range d.strategies {
		if tokens, ok := s.Decode(payload); ok {
			return tokens
		}
	}

	if d.warn != nil {
		d.warn(payload)
	}
	return nil
}

// DecodeStrict is Decode with a hard failure when no strategy matches.
// Useful when the firmware encoding is known and silence would hide bugs.
func (d *Decoder) DecodeStrict(payload []byte) ([]string, error) {
	for _, s := range d.strategies {
		if tokens, ok := s.Decode(payload); ok {
			return tokens, nil
		}
	}
	return nil, ErrNoStrategy
}

// decodeText interprets the payload as UTF-8 move notation split on
// whitespace, commas and semicolons. The whole payload is accepted only
// if every token belongs to the extended move vocabulary; one bad token
// invalidates the strategy so binary payloads fall through.
func decodeText(payload []byte) ([]string, bool) {
	if len(payload) == 0 || !utf8.Valid(payload) {
		return nil, false
	}

	fields := strings.FieldsFunc(string(payload), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
	if len(fields) == 0 {
		return nil, false
	}

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if !isExtendedToken(f) {
			return nil, false
		}
		tokens = append(tokens, Normalize(f))
	}
	return tokens, true
}

// decodeSingleByte maps a one-byte payload in [0,12) through the index
// table.
func decodeSingleByte(payload []byte) ([]string, bool) {
	if len(payload) != 1 || payload[0] >= 12 {
		return nil, false
	}
	return []string{indexTable[payload[0]]}, true
}

// decodeByteSequence maps each byte through the index table, preserving
// order, so one notification can carry several queued moves. Any byte
// outside [0,12) invalidates the whole strategy.
func decodeByteSequence(payload []byte) ([]string, bool) {
	if len(payload) == 0 {
		return nil, false
	}

	tokens := make([]string, 0, len(payload))
	for _, b := range payload {
		if b >= 12 {
			return nil, false
		}
		tokens = append(tokens, indexTable[b])
	}
	return tokens, true
}

// decodeNibblePacked extracts face = b&0x07 and turn = (b>>3)&0x03 from
// each byte. Face values 6-7 and the reserved turn value 3 skip the byte
// without aborting the scan. The bit layout is speculative, reverse
// engineered from captures rather than documented firmware. Single-byte
// payloads are the index encoding's territory and never nibble-decoded;
// a lone out-of-table byte means no move, not a guessed one. The layout
// uses only the low five bits, so any byte with high bits set means the
// payload is not this encoding at all (text that failed the text
// strategy must not be reinterpreted as packed moves).
func decodeNibblePacked(payload []byte) ([]string, bool) {
	if len(payload) < 2 {
		return nil, false
	}

	var tokens []string
	for _, b := range payload {
		if b>>5 != 0 {
			return nil, false
		}
		face := b & 0x07
		if face > 5 {
			continue
		}
		var suffix string
		switch (b >> 3) & 0x03 {
		case 0:
			suffix = ""
		case 1:
			suffix = "'"
		case 2:
			suffix = "2"
		default:
			continue // reserved
		}
		tokens = append(tokens, nibbleFaces[face]+suffix)
	}

	if len(tokens) == 0 {
		return nil, false
	}
	return tokens, true
}
