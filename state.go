package cubeview

import (
	"fmt"
	"sync"
)

// Facelet is one of the 54 colored unit squares on the cube's surface,
// identified by the face it belongs to when solved.
type Facelet byte

const (
	FaceletU Facelet = 'U'
	FaceletR Facelet = 'R'
	FaceletF Facelet = 'F'
	FaceletD Facelet = 'D'
	FaceletL Facelet = 'L'
	FaceletB Facelet = 'B'
)

// Face indices in serialization order.
const (
	fU = iota
	fR
	fF
	fD
	fL
	fB
)

var solvedFacelets = [6]Facelet{FaceletU, FaceletR, FaceletF, FaceletD, FaceletL, FaceletB}

var faceIndex = map[Face]int{
	FaceU: fU, FaceR: fR, FaceF: fF,
	FaceD: fD, FaceL: fL, FaceB: fB,
}

// State tracks the logical facelet state of the cube. Each face holds 9
// facelets indexed row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) never moves. State is mutated only through move
// application and Reset; it is the single owner of the facelet sequence.
// Safe for concurrent use: radio callbacks and UI input may apply moves
// from different goroutines.
type State struct {
	mu       sync.Mutex
	facelets [6][9]Facelet
}

// NewState creates a logical cube state in the solved position.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores the solved state: each face uniformly one symbol.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for face := 0; face < 6; face++ {
		for i := 0; i < 9; i++ {
			s.facelets[face][i] = solvedFacelets[face]
		}
	}
}

// Apply mutates the state by the rotation for one canonical token.
// Tokens that do not map to a face turn (extended or malformed tokens)
// leave the state unchanged and return an error for the caller to report.
func (s *State) Apply(token string) error {
	m, err := ParseMove(token)
	if err != nil {
		return fmt.Errorf("apply %q: %w", token, err)
	}
	s.ApplyMove(m)
	return nil
}

// ApplyMove mutates the state by one move.
func (s *State) ApplyMove(m Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	face := faceIndex[m.Face]
	switch m.Turn {
	case CW:
		s.quarterTurn(face)
	case CCW:
		s.quarterTurn(face)
		s.quarterTurn(face)
		s.quarterTurn(face)
	case Double:
		s.quarterTurn(face)
		s.quarterTurn(face)
	}
}

// ApplyMoves applies a sequence of moves in order.
func (s *State) ApplyMoves(moves []Move) {
	for _, m := range moves {
		s.ApplyMove(m)
	}
}

// Serialize returns the 54-symbol state string: faces in U, R, F, D, L, B
// order, 9 facelets per face row-major. Deterministic for a given state.
func (s *State) Serialize() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, 0, 54)
	for face := 0; face < 6; face++ {
		for i := 0; i < 9; i++ {
			out = append(out, byte(s.facelets[face][i]))
		}
	}
	return string(out)
}

// IsSolved reports whether every face is uniformly one symbol.
func (s *State) IsSolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for face := 0; face < 6; face++ {
		for i := 0; i < 9; i++ {
			if s.facelets[face][i] != solvedFacelets[face] {
				return false
			}
		}
	}
	return true
}

// strip is three facelets on one face, part of the ring around a turning
// face.
type strip struct {
	face int
	idx  [3]int
}

// rings lists, for each face, the four side strips affected by a
// clockwise quarter turn. Contents move from one strip to the next.
var rings = [6][4]strip{
	fU: {{fF, [3]int{0, 1, 2}}, {fL, [3]int{0, 1, 2}}, {fB, [3]int{0, 1, 2}}, {fR, [3]int{0, 1, 2}}},
	fR: {{fU, [3]int{2, 5, 8}}, {fB, [3]int{6, 3, 0}}, {fD, [3]int{2, 5, 8}}, {fF, [3]int{2, 5, 8}}},
	fF: {{fU, [3]int{6, 7, 8}}, {fR, [3]int{0, 3, 6}}, {fD, [3]int{2, 1, 0}}, {fL, [3]int{8, 5, 2}}},
	fD: {{fF, [3]int{6, 7, 8}}, {fR, [3]int{6, 7, 8}}, {fB, [3]int{6, 7, 8}}, {fL, [3]int{6, 7, 8}}},
	fL: {{fU, [3]int{0, 3, 6}}, {fF, [3]int{0, 3, 6}}, {fD, [3]int{0, 3, 6}}, {fB, [3]int{8, 5, 2}}},
	fB: {{fU, [3]int{2, 1, 0}}, {fL, [3]int{0, 3, 6}}, {fD, [3]int{6, 7, 8}}, {fR, [3]int{8, 5, 2}}},
}

// quarterTurn applies one clockwise quarter turn to a face: rotate the
// face's own facelets, then cycle the surrounding ring.
func (s *State) quarterTurn(face int) {
	f := &s.facelets[face]

	// Corners 0->2->8->6->0, edges 1->5->7->3->1.
	tmp := f[0]
	f[0] = f[6]
	f[6] = f[8]
	f[8] = f[2]
	f[2] = tmp

	tmp = f[1]
	f[1] = f[3]
	f[3] = f[7]
	f[7] = f[5]
	f[5] = tmp

	ring := rings[face]

	var saved [3]Facelet
	last := ring[3]
	for k := 0; k < 3; k++ {
		saved[k] = s.facelets[last.face][last.idx[k]]
	}
	for i := 3; i > 0; i-- {
		dst, src := ring[i], ring[i-1]
		for k := 0; k < 3; k++ {
			s.facelets[dst.face][dst.idx[k]] = s.facelets[src.face][src.idx[k]]
		}
	}
	for k := 0; k < 3; k++ {
		s.facelets[ring[0].face][ring[0].idx[k]] = saved[k]
	}
}

// String returns a flat net of the cube for debugging.
func (s *State) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := ""

	for row := 0; row < 3; row++ {
		out += "      "
		for col := 0; col < 3; col++ {
			out += string(s.facelets[fU][row*3+col]) + " "
		}
		out += "\n"
	}
	for row := 0; row < 3; row++ {
		for _, face := range []int{fL, fF, fR, fB} {
			for col := 0; col < 3; col++ {
				out += string(s.facelets[face][row*3+col]) + " "
			}
		}
		out += "\n"
	}
	for row := 0; row < 3; row++ {
		out += "      "
		for col := 0; col < 3; col++ {
			out += string(s.facelets[fD][row*3+col]) + " "
		}
		out += "\n"
	}

	return out
}
