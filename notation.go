package cubeview

// Normalize canonicalizes a single move token: a case-insensitive face
// letter (U, R, F, D, L, B) optionally followed by ' or 2 becomes
// uppercase face plus the original modifier. Anything else is returned
// unchanged - the normalizer fails open, and downstream consumers must
// re-validate. Normalize is idempotent and has no side effects.
func Normalize(token string) string {
	if len(token) < 1 || len(token) > 2 {
		return token
	}

	face, ok := upperFace(token[0])
	if !ok {
		return token
	}

	if len(token) == 1 {
		return string(face)
	}
	switch token[1] {
	case '\'', '2':
		return string(face) + string(token[1])
	}
	return token
}

// upperFace maps a face letter to its uppercase form.
func upperFace(c byte) (byte, bool) {
	switch c {
	case 'U', 'R', 'F', 'D', 'L', 'B':
		return c, true
	case 'u', 'r', 'f', 'd', 'l', 'b':
		return c - ('a' - 'A'), true
	}
	return 0, false
}

// isExtendedToken reports whether a token belongs to the extended move
// vocabulary used by text-mode firmware: outer faces (either case) plus
// slice moves (M, E, S) and whole-cube rotations (x, y, z) in their
// conventional case, with an optional ' or 2 modifier. Extended tokens
// pass text decoding but only outer-face tokens map to a rotatable
// layer.
func isExtendedToken(token string) bool {
	if len(token) < 1 || len(token) > 2 {
		return false
	}

	switch token[0] {
	case 'U', 'R', 'F', 'D', 'L', 'B',
		'u', 'r', 'f', 'd', 'l', 'b',
		'M', 'E', 'S',
		'x', 'y', 'z':
	default:
		return false
	}

	if len(token) == 2 && token[1] != '\'' && token[1] != '2' {
		return false
	}
	return true
}
