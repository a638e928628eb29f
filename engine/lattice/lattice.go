// Package lattice builds the N×N×N grid of unit cubes that makes up the puzzle cube model.
package lattice

import (
	"github.com/Carmen-Shannon/pixelcube/common"
	"github.com/Carmen-Shannon/pixelcube/engine/renderer/material"
	"github.com/Carmen-Shannon/pixelcube/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Coord is an integer grid coordinate of a lattice cell.
type Coord struct {
	X, Y, Z int
}

// Cell is one unit cube of the lattice.
type Cell struct {
	// Coord is the cell's grid coordinate.
	Coord Coord
	// Node holds the cell's transform relative to the container.
	Node scene.Node
	// Faces is the face material set, shared by every cell of the lattice.
	Faces *material.FaceSet
}

// Position returns the cell's position relative to the container.
func (c Cell) Position() mgl64.Vec3 {
	return c.Node.Position()
}

// latticeImpl is the implementation of the Lattice interface.
type latticeImpl struct {
	size    int
	spacing float64
	scale   float64
	faces   *material.FaceSet

	container scene.Node
	cells     []Cell
	index     map[Coord]int
}

// Lattice is an N×N×N arrangement of unit cubes under a single container transform.
//
// The cell set and every cell transform are fixed at construction. Only the container's rotation
// changes afterwards.
type Lattice interface {
	// Size returns N, the number of cells along each axis.
	//
	// Returns:
	//   - int: the edge cell count
	Size() int

	// Spacing returns the multiplicative gap factor between cells.
	//
	// Returns:
	//   - float64: the spacing factor
	Spacing() float64

	// Cells returns every cell in construction order (x outer, y middle, z inner).
	//
	// Returns:
	//   - []Cell: the N³ cells
	Cells() []Cell

	// Cell looks up a cell by grid coordinate.
	//
	// Parameters:
	//   - x, y, z: the grid coordinate
	//
	// Returns:
	//   - Cell: the cell at the coordinate
	//   - bool: false when the coordinate is outside the lattice
	Cell(x, y, z int) (Cell, bool)

	// Container returns the node every cell is attached to.
	//
	// Returns:
	//   - scene.Node: the container node
	Container() scene.Node

	// FaceMaterials returns the face material set shared by every cell.
	//
	// Returns:
	//   - *material.FaceSet: the shared materials
	FaceMaterials() *material.FaceSet

	// Rotate adds Euler deltas (radians) to the container rotation.
	//
	// Parameters:
	//   - dx, dy, dz: radians to add about each axis
	Rotate(dx, dy, dz float64)

	// Rotation returns the container's accumulated Euler rotation.
	//
	// Returns:
	//   - mgl64.Vec3: rotation about X, Y and Z in radians
	Rotation() mgl64.Vec3

	// Offsets returns every cell position packed as vec4 (w = 1) for instanced drawing,
	// in the same order as Cells.
	//
	// Returns:
	//   - []mgl32.Vec4: per-instance offsets
	Offsets() []mgl32.Vec4
}

var _ Lattice = &latticeImpl{}

// NewLattice builds a lattice.
//
// Grid coordinates along each axis run from -⌊N/2⌋ through -⌊N/2⌋+N-1, so odd sizes are symmetric
// about zero and even sizes lean one step toward negative coordinates. A cell's position on each
// axis is c + c*spacing. The container is then translated to -0.5*(N + spacing*N - 2) on every
// axis, its rotation zeroed, and scaled uniformly.
//
// Size and spacing are not validated.
//
// Parameters:
//   - options: a variadic list of LatticeBuilderOption functions
//
// Returns:
//   - Lattice: the built lattice
func NewLattice(options ...LatticeBuilderOption) Lattice {
	l := &latticeImpl{
		size:    3,
		spacing: 0.05,
		scale:   50,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.faces == nil {
		l.faces = material.NewFaceSetFromColors(DefaultColors)
	}

	n := l.size
	if n < 0 {
		n = 0
	}
	l.container = scene.NewNode(scene.WithName("lattice"))
	l.cells = make([]Cell, 0, n*n*n)
	l.index = make(map[Coord]int, n*n*n)

	start := -(n / 2)
	for x := start; x < start+n; x++ {
		for y := start; y < start+n; y++ {
			for z := start; z < start+n; z++ {
				c := Coord{X: x, Y: y, Z: z}
				node := scene.NewNode(scene.WithPosition(l.cellOffset(x), l.cellOffset(y), l.cellOffset(z)))
				l.container.Add(node)
				l.index[c] = len(l.cells)
				l.cells = append(l.cells, Cell{Coord: c, Node: node, Faces: l.faces})
			}
		}
	}

	t := -0.5 * (float64(n) + l.spacing*float64(n) - 2)
	l.container.SetPosition(t, t, t)
	l.container.SetRotation(0, 0, 0)
	l.container.SetScale(l.scale, l.scale, l.scale)
	return l
}

func (l *latticeImpl) cellOffset(c int) float64 {
	return float64(c) + float64(c)*l.spacing
}

func (l *latticeImpl) Size() int {
	return l.size
}

func (l *latticeImpl) Spacing() float64 {
	return l.spacing
}

func (l *latticeImpl) Cells() []Cell {
	return l.cells
}

func (l *latticeImpl) Cell(x, y, z int) (Cell, bool) {
	i, ok := l.index[Coord{X: x, Y: y, Z: z}]
	if !ok {
		return Cell{}, false
	}
	return l.cells[i], true
}

func (l *latticeImpl) Container() scene.Node {
	return l.container
}

func (l *latticeImpl) FaceMaterials() *material.FaceSet {
	return l.faces
}

func (l *latticeImpl) Rotate(dx, dy, dz float64) {
	l.container.Rotate(dx, dy, dz)
}

func (l *latticeImpl) Rotation() mgl64.Vec3 {
	return l.container.Rotation()
}

func (l *latticeImpl) Offsets() []mgl32.Vec4 {
	out := make([]mgl32.Vec4, len(l.cells))
	for i, c := range l.cells {
		out[i] = common.Vec3To32(c.Node.Position()).Vec4(1)
	}
	return out
}
