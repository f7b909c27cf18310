package cubeview

import "fmt"

// Axis identifies a grid rotation axis: x runs right, y up, z front.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Coord is an integer grid coordinate. Sub-cube coordinates stay in
// {-1,0,1} on every axis; the same type doubles as a facet normal.
type Coord struct {
	X, Y, Z int
}

// rotated returns the coordinate after one quarter turn about axis.
// dir +1 is the positive (right-hand) rotation, -1 its inverse. Each
// mapping is a signed axis swap, so four applications are the identity
// and two same-direction quarters equal one half turn by construction.
func (c Coord) rotated(axis Axis, dir int) Coord {
	switch axis {
	case AxisX:
		return Coord{c.X, -dir * c.Z, dir * c.Y}
	case AxisY:
		return Coord{dir * c.Z, c.Y, -dir * c.X}
	case AxisZ:
		return Coord{-dir * c.Y, dir * c.X, c.Z}
	default:
		return c
	}
}

// axisValue returns the coordinate's component on one axis.
func (c Coord) axisValue(axis Axis) int {
	switch axis {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// layerSpec addresses one rotatable outer layer: the 9 sub-cubes whose
// coordinate on axis equals value. dir is the grid rotation direction of
// a clockwise turn of that face - negative for +1 faces, positive for -1
// faces, so "clockwise" always means clockwise as seen from outside.
type layerSpec struct {
	axis  Axis
	value int
	dir   int
}

// faceLayers maps the six outer faces to their layers. Center layers
// (coordinate 0) are never addressed: the F/B/U/D/L/R vocabulary only
// reaches the outer layers.
var faceLayers = map[Face]layerSpec{
	FaceR: {AxisX, 1, -1},
	FaceL: {AxisX, -1, 1},
	FaceU: {AxisY, 1, -1},
	FaceD: {AxisY, -1, 1},
	FaceF: {AxisZ, 1, -1},
	FaceB: {AxisZ, -1, 1},
}

// layerFor resolves a move to its (axis, value, direction) triple and
// quarter-turn count. Moves whose face is unknown or whose turn is not
// one of the three enumerated values are rejected.
func layerFor(m Move) (layerSpec, int, error) {
	spec, ok := faceLayers[m.Face]
	if !ok {
		return layerSpec{}, 0, fmt.Errorf("move %q: %w", m.Notation(), ErrInvalidToken)
	}
	switch m.Turn {
	case CW:
		return spec, 1, nil
	case CCW:
		return layerSpec{spec.axis, spec.value, -spec.dir}, 1, nil
	case Double:
		return spec, 2, nil
	default:
		return layerSpec{}, 0, fmt.Errorf("move %q: %w", m.Notation(), ErrInvalidToken)
	}
}

// SubCube is one of the 27 unit cubes composing the puzzle. Home is the
// originally assigned coordinate, restored on Reset; Pos is the current
// coordinate, mutated only when a move commits. facets maps outward
// normals to facelet symbols; interior facets carry the zero Facelet.
type SubCube struct {
	Home Coord
	Pos  Coord

	facets map[Coord]Facelet
}

// Facet returns the facelet symbol facing the given outward normal, or
// false if that side of the sub-cube is unpainted interior.
func (sc *SubCube) Facet(normal Coord) (Facelet, bool) {
	f, ok := sc.facets[normal]
	return f, ok
}

// rotate commits one quarter turn to the sub-cube: the grid coordinate
// and every facet normal move through the same rotation, so colors stay
// attached to their outward directions.
func (sc *SubCube) rotate(axis Axis, dir int) {
	sc.Pos = sc.Pos.rotated(axis, dir)

	rotated := make(map[Coord]Facelet, len(sc.facets))
	for n, f := range sc.facets {
		rotated[n.rotated(axis, dir)] = f
	}
	sc.facets = rotated
}

// Grid maintains the 27 sub-cubes. The coordinates of all sub-cubes are
// a bijection onto {-1,0,1}^3 before and after every committed move;
// the rotation formulas preserve this by construction. Only the
// animation engine's commit step writes to the grid.
type Grid struct {
	cubes [27]*SubCube
}

// NewGrid creates a grid in the solved position: every sub-cube at its
// home coordinate, outward facets painted with the owning face's symbol.
func NewGrid() *Grid {
	g := &Grid{}
	i := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				home := Coord{x, y, z}
				g.cubes[i] = &SubCube{
					Home:   home,
					Pos:    home,
					facets: solvedFacetsAt(home),
				}
				i++
			}
		}
	}
	return g
}

// solvedFacetsAt paints the outward-facing sides of a sub-cube at its
// home coordinate. Interior sides get no entry.
func solvedFacetsAt(home Coord) map[Coord]Facelet {
	facets := make(map[Coord]Facelet, 3)
	if home.X == 1 {
		facets[Coord{1, 0, 0}] = FaceletR
	}
	if home.X == -1 {
		facets[Coord{-1, 0, 0}] = FaceletL
	}
	if home.Y == 1 {
		facets[Coord{0, 1, 0}] = FaceletU
	}
	if home.Y == -1 {
		facets[Coord{0, -1, 0}] = FaceletD
	}
	if home.Z == 1 {
		facets[Coord{0, 0, 1}] = FaceletF
	}
	if home.Z == -1 {
		facets[Coord{0, 0, -1}] = FaceletB
	}
	return facets
}

// Reset snaps every sub-cube back to its originally assigned coordinate
// and facet orientation, independent of move history.
func (g *Grid) Reset() {
	for _, sc := range g.cubes {
		sc.Pos = sc.Home
		sc.facets = solvedFacetsAt(sc.Home)
	}
}

// Layer returns the sub-cubes whose coordinate on axis equals value.
// For an outer layer this is always 9 sub-cubes.
func (g *Grid) Layer(axis Axis, value int) []*SubCube {
	var layer []*SubCube
	for _, sc := range g.cubes {
		if sc.Pos.axisValue(axis) == value {
			layer = append(layer, sc)
		}
	}
	return layer
}

// At returns the sub-cube currently occupying a coordinate, or nil.
func (g *Grid) At(c Coord) *SubCube {
	for _, sc := range g.cubes {
		if sc.Pos == c {
			return sc
		}
	}
	return nil
}

// Cubes returns the sub-cubes in their fixed creation order.
func (g *Grid) Cubes() []*SubCube {
	return g.cubes[:]
}

// faceBasis describes how a face unfolds into a 3x3 net: position =
// normal + rowDir*(row-1) + colDir*(col-1), standard net orientation.
type faceBasis struct {
	normal Coord
	rowDir Coord
	colDir Coord
}

var faceBases = map[Face]faceBasis{
	FaceU: {Coord{0, 1, 0}, Coord{0, 0, 1}, Coord{1, 0, 0}},
	FaceR: {Coord{1, 0, 0}, Coord{0, -1, 0}, Coord{0, 0, -1}},
	FaceF: {Coord{0, 0, 1}, Coord{0, -1, 0}, Coord{1, 0, 0}},
	FaceD: {Coord{0, -1, 0}, Coord{0, 0, -1}, Coord{1, 0, 0}},
	FaceL: {Coord{-1, 0, 0}, Coord{0, -1, 0}, Coord{0, 0, 1}},
	FaceB: {Coord{0, 0, -1}, Coord{0, -1, 0}, Coord{-1, 0, 0}},
}

// FaceFacelets reads the 9 visible facelets of one face from the grid,
// row-major in the standard net orientation.
func (g *Grid) FaceFacelets(face Face) [9]Facelet {
	var out [9]Facelet
	basis := faceBases[face]
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			pos := Coord{
				X: basis.normal.X + basis.rowDir.X*(row-1) + basis.colDir.X*(col-1),
				Y: basis.normal.Y + basis.rowDir.Y*(row-1) + basis.colDir.Y*(col-1),
				Z: basis.normal.Z + basis.rowDir.Z*(row-1) + basis.colDir.Z*(col-1),
			}
			if sc := g.At(pos); sc != nil {
				if f, ok := sc.Facet(basis.normal); ok {
					out[row*3+col] = f
				}
			}
		}
	}
	return out
}

// Serialize returns the 54-symbol state string read off the grid, same
// format as State.Serialize: U, R, F, D, L, B, row-major per face.
func (g *Grid) Serialize() string {
	out := make([]byte, 0, 54)
	for _, face := range []Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB} {
		facelets := g.FaceFacelets(face)
		for _, f := range facelets {
			out = append(out, byte(f))
		}
	}
	return string(out)
}

// Validate checks the coordinate bijection: every coordinate in
// {-1,0,1}^3 occupied exactly once. The rotation formulas make this hold
// by construction; Validate exists as a debug assertion for tests.
func (g *Grid) Validate() error {
	seen := make(map[Coord]int, 27)
	for _, sc := range g.cubes {
		for _, v := range []int{sc.Pos.X, sc.Pos.Y, sc.Pos.Z} {
			if v < -1 || v > 1 {
				return fmt.Errorf("sub-cube at %v outside grid", sc.Pos)
			}
		}
		seen[sc.Pos]++
	}
	if len(seen) != 27 {
		return fmt.Errorf("grid holds %d distinct coordinates, want 27", len(seen))
	}
	for c, n := range seen {
		if n != 1 {
			return fmt.Errorf("coordinate %v occupied %d times", c, n)
		}
	}
	return nil
}
