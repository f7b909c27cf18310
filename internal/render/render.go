// Package render draws the cube grid as a colored terminal net.
package render

import (
	"strings"

	"github.com/SeamusWaldron/cubeview"
	"github.com/charmbracelet/lipgloss"
)

// One style per facelet symbol, standard color scheme: white up, yellow
// down, green front, blue back, red right, orange left.
var faceletStyles = map[cubeview.Facelet]lipgloss.Style{
	cubeview.FaceletU: lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0")),
	cubeview.FaceletD: lipgloss.NewStyle().Background(lipgloss.Color("11")).Foreground(lipgloss.Color("0")),
	cubeview.FaceletF: lipgloss.NewStyle().Background(lipgloss.Color("10")).Foreground(lipgloss.Color("0")),
	cubeview.FaceletB: lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.Color("0")),
	cubeview.FaceletR: lipgloss.NewStyle().Background(lipgloss.Color("9")).Foreground(lipgloss.Color("0")),
	cubeview.FaceletL: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")),
}

var blankStyle = lipgloss.NewStyle().Faint(true)

// cell renders one facelet as a two-character block.
func cell(f cubeview.Facelet) string {
	style, ok := faceletStyles[f]
	if !ok {
		return blankStyle.Render("??")
	}
	return style.Render(" " + string(f))
}

// faceRows renders one face into three strings of three cells.
func faceRows(facelets [9]cubeview.Facelet) [3]string {
	var rows [3]string
	for row := 0; row < 3; row++ {
		var b strings.Builder
		for col := 0; col < 3; col++ {
			b.WriteString(cell(facelets[row*3+col]))
		}
		rows[row] = b.String()
	}
	return rows
}

// Net renders the grid as a flat cube net:
//
//	    U
//	L F R B
//	    D
func Net(grid *cubeview.Grid) string {
	u := faceRows(grid.FaceFacelets(cubeview.FaceU))
	l := faceRows(grid.FaceFacelets(cubeview.FaceL))
	f := faceRows(grid.FaceFacelets(cubeview.FaceF))
	r := faceRows(grid.FaceFacelets(cubeview.FaceR))
	b := faceRows(grid.FaceFacelets(cubeview.FaceB))
	d := faceRows(grid.FaceFacelets(cubeview.FaceD))

	pad := strings.Repeat(" ", 6)

	var out strings.Builder
	for row := 0; row < 3; row++ {
		out.WriteString(pad + u[row] + "\n")
	}
	for row := 0; row < 3; row++ {
		out.WriteString(l[row] + f[row] + r[row] + b[row] + "\n")
	}
	for row := 0; row < 3; row++ {
		out.WriteString(pad + d[row] + "\n")
	}
	return out.String()
}

// ProgressBar renders the eased progress of the running move as a fixed
// width bar. Width excludes the brackets.
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
