package phaseunwrap

import (
	"fmt"
	"image"
	"math"

	"github.com/pkg/errors"
)

// Element is the set of pixel types a Grid can hold.
type Element interface {
	~uint8 | ~uint16 | ~uint32 | ~float32 | ~float64
}

// Grid is an owned 2D grid stored row-major. X is the column and Y the row.
type Grid[T Element] struct {
	width  int
	height int
	data   []T
}

// NewGrid allocates a zeroed grid. It panics on negative dimensions and on
// sizes whose area overflows int.
func NewGrid[T Element](width, height int) *Grid[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("phaseunwrap: negative grid size %dx%d", width, height))
	}
	if areaOverflows(width, height) {
		panic(fmt.Sprintf("phaseunwrap: grid size %dx%d overflows", width, height))
	}
	return &Grid[T]{width: width, height: height, data: make([]T, width*height)}
}

// GridFromSlice wraps data, which must hold exactly width*height values.
func GridFromSlice[T Element](width, height int, data []T) (*Grid[T], error) {
	if width < 0 || height < 0 || areaOverflows(width, height) {
		return nil, errors.Errorf("invalid grid size %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, errors.Errorf("grid %dx%d needs %d values, got %d", width, height, width*height, len(data))
	}
	return &Grid[T]{width: width, height: height, data: data}, nil
}

// areaOverflows reports whether width*height does not fit in an int. Both
// sizes must be non-negative.
func areaOverflows(width, height int) bool {
	return height > 0 && width > math.MaxInt/height
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }
func (g *Grid[T]) Empty() bool { return g == nil || g.width == 0 || g.height == 0 }

// Size returns the grid dimensions as a point (X = width, Y = height).
func (g *Grid[T]) Size() image.Point { return image.Pt(g.width, g.height) }

func (g *Grid[T]) index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("phaseunwrap: pixel (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

func (g *Grid[T]) At(x, y int) T     { return g.data[g.index(x, y)] }
func (g *Grid[T]) Set(x, y int, v T) { g.data[g.index(x, y)] = v }

// Row returns the backing slice of row y. Writes through it modify the grid.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		panic(fmt.Sprintf("phaseunwrap: row %d outside %dx%d grid", y, g.width, g.height))
	}
	return g.data[y*g.width : (y+1)*g.width]
}

// Data returns the row-major backing slice.
func (g *Grid[T]) Data() []T { return g.data }

func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{width: g.width, height: g.height, data: make([]T, len(g.data))}
	copy(out.data, g.data)
	return out
}

func (g *Grid[T]) String() string {
	return fmt.Sprintf("Grid[%dx%d]", g.width, g.height)
}
