package wbgt

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

/*
N-dimensional grid of float64 values.

All physical quantities flowing through the WBGT calculation are grids
sharing a logical (time, lat, lon) index space. Lower-rank inputs (e.g. a
1-D day-of-year series against a 2-D lat/lon field) are aligned by
broadcasting: shapes are compared right-aligned, and an axis of extent 1
repeats against any extent.

NaN values mark missing data and propagate through every elementwise
operation.
*/
type Grid struct {
	shape []int
	data  []float64
}

/*
Create a grid from a shape and flat row-major data.

    Args:
        shape: extent of each axis; an empty shape denotes a scalar
        data: row-major cell values, len(data) must equal the shape product
*/
func NewGrid(shape []int, data []float64) *Grid {
	n := size_of(shape)
	if len(data) != n {
		panic(fmt.Sprintf("grid: shape %v needs %d values, got %d", shape, n, len(data)))
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Grid{shape: s, data: data}
}

// Create a rank-0 grid holding a single value.
func Scalar(v float64) *Grid {
	return &Grid{shape: []int{}, data: []float64{v}}
}

// Create a grid of the given shape with every cell set to v.
func Full(shape []int, v float64) *Grid {
	data := make([]float64, size_of(shape))
	for i := range data {
		data[i] = v
	}
	return NewGrid(shape, data)
}

// Shape of the grid. The returned slice must not be modified.
func (g *Grid) Shape() []int {
	return g.shape
}

// Flat row-major cell values. The returned slice must not be modified.
func (g *Grid) Data() []float64 {
	return g.data
}

// Number of cells.
func (g *Grid) Size() int {
	return len(g.data)
}

// Number of axes.
func (g *Grid) Rank() int {
	return len(g.shape)
}

/*
View the same cells under a new shape.

    Args:
        shape: new extents; the product must equal the current size

    Notes:
        Used to give a 1-D day-of-year series the explicit [t, 1, 1] shape
        required to broadcast against lat/lon fields.
*/
func (g *Grid) Reshape(shape ...int) *Grid {
	if size_of(shape) != len(g.data) {
		panic(fmt.Sprintf("grid: cannot reshape size %d to %v", len(g.data), shape))
	}
	s := make([]int, len(shape))
	copy(s, shape)
	return &Grid{shape: s, data: g.data}
}

/*
Expand 1-D longitude and latitude vectors to matching 2-D coordinate
fields of shape [len(lat), len(lon)].
*/
func Meshgrid(lon, lat *Grid) (*Grid, *Grid) {
	if lon.Rank() != 1 || lat.Rank() != 1 {
		panic("grid: meshgrid requires rank-1 inputs")
	}
	ny, nx := lat.shape[0], lon.shape[0]
	lon2 := make([]float64, ny*nx)
	lat2 := make([]float64, ny*nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			lon2[j*nx+i] = lon.data[i]
			lat2[j*nx+i] = lat.data[j]
		}
	}
	return NewGrid([]int{ny, nx}, lon2), NewGrid([]int{ny, nx}, lat2)
}

// Number of cells implied by a shape. A scalar shape has one cell.
func size_of(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func same_shape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

/*
Common shape of two operands under right-aligned broadcasting.
Panics when the shapes are incompatible: a shape mismatch is a caller
contract violation, not a recoverable condition.
*/
func broadcast_shape(a, b []int) []int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if i >= n-len(a) {
			da = a[i-(n-len(a))]
		}
		if i >= n-len(b) {
			db = b[i-(n-len(b))]
		}
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			panic(fmt.Sprintf("grid: shapes %v and %v are not broadcast-compatible", a, b))
		}
	}
	return out
}

/*
Row-major strides of a grid viewed under a broadcast shape.
Axes of extent 1 (and axes absent from the original shape) get stride 0 so
that the single value repeats along them.
*/
func broadcast_strides(shape, target []int) []int {
	strides := make([]int, len(target))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		k := i + len(target) - len(shape)
		if shape[i] != 1 {
			strides[k] = acc
		}
		acc *= shape[i]
	}
	return strides
}

/*
Materialize a grid at a larger broadcast shape, repeating the values
along extent-1 and missing axes. Panics when the grid's shape does not
broadcast to target.
*/
func (g *Grid) broadcast_to(target []int) *Grid {
	if same_shape(g.shape, target) {
		return g
	}
	if !same_shape(broadcast_shape(g.shape, target), target) {
		panic(fmt.Sprintf("grid: cannot broadcast shape %v to %v", g.shape, target))
	}
	st := broadcast_strides(g.shape, target)
	n := size_of(target)
	out := make([]float64, n)
	idx := make([]int, len(target))
	is := 0
	for i := 0; i < n; i++ {
		out[i] = g.data[is]
		for k := len(target) - 1; k >= 0; k-- {
			idx[k]++
			is += st[k]
			if idx[k] < target[k] {
				break
			}
			idx[k] = 0
			is -= st[k] * target[k]
		}
	}
	return &Grid{shape: target, data: out}
}

// Common broadcast shape of any number of grids.
func common_shape(gs ...*Grid) []int {
	shape := gs[0].shape
	for _, g := range gs[1:] {
		shape = broadcast_shape(shape, g.shape)
	}
	return shape
}

// Elementwise application of f over one grid.
func apply(g *Grid, f func(float64) float64) *Grid {
	out := make([]float64, len(g.data))
	for i, v := range g.data {
		out[i] = f(v)
	}
	return &Grid{shape: g.shape, data: out}
}

/*
Elementwise application of f over two grids with broadcasting.
The equal-shape case needs no index arithmetic; the general case walks an
odometer over the broadcast shape with per-operand strides.
*/
func zip_with(a, b *Grid, f func(x, y float64) float64) *Grid {
	if same_shape(a.shape, b.shape) {
		out := make([]float64, len(a.data))
		for i := range a.data {
			out[i] = f(a.data[i], b.data[i])
		}
		return &Grid{shape: a.shape, data: out}
	}
	shape := broadcast_shape(a.shape, b.shape)
	sa := broadcast_strides(a.shape, shape)
	sb := broadcast_strides(b.shape, shape)
	n := size_of(shape)
	out := make([]float64, n)
	idx := make([]int, len(shape))
	ia, ib := 0, 0
	for i := 0; i < n; i++ {
		out[i] = f(a.data[ia], b.data[ib])
		for k := len(shape) - 1; k >= 0; k-- {
			idx[k]++
			ia += sa[k]
			ib += sb[k]
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
			ia -= sa[k] * shape[k]
			ib -= sb[k] * shape[k]
		}
	}
	return &Grid{shape: shape, data: out}
}

// Elementwise application of f over three grids with broadcasting.
func zip_with3(a, b, c *Grid, f func(x, y, z float64) float64) *Grid {
	if same_shape(a.shape, b.shape) && same_shape(b.shape, c.shape) {
		out := make([]float64, len(a.data))
		for i := range a.data {
			out[i] = f(a.data[i], b.data[i], c.data[i])
		}
		return &Grid{shape: a.shape, data: out}
	}
	shape := broadcast_shape(broadcast_shape(a.shape, b.shape), c.shape)
	sa := broadcast_strides(a.shape, shape)
	sb := broadcast_strides(b.shape, shape)
	sc := broadcast_strides(c.shape, shape)
	n := size_of(shape)
	out := make([]float64, n)
	idx := make([]int, len(shape))
	ia, ib, ic := 0, 0, 0
	for i := 0; i < n; i++ {
		out[i] = f(a.data[ia], b.data[ib], c.data[ic])
		for k := len(shape) - 1; k >= 0; k-- {
			idx[k]++
			ia += sa[k]
			ib += sb[k]
			ic += sc[k]
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
			ia -= sa[k] * shape[k]
			ib -= sb[k] * shape[k]
			ic -= sc[k] * shape[k]
		}
	}
	return &Grid{shape: shape, data: out}
}

func (g *Grid) add(o *Grid) *Grid {
	if same_shape(g.shape, o.shape) {
		out := make([]float64, len(g.data))
		floats.AddTo(out, g.data, o.data)
		return &Grid{shape: g.shape, data: out}
	}
	return zip_with(g, o, func(x, y float64) float64 { return x + y })
}

func (g *Grid) sub(o *Grid) *Grid {
	if same_shape(g.shape, o.shape) {
		out := make([]float64, len(g.data))
		floats.SubTo(out, g.data, o.data)
		return &Grid{shape: g.shape, data: out}
	}
	return zip_with(g, o, func(x, y float64) float64 { return x - y })
}

func (g *Grid) mul(o *Grid) *Grid {
	if same_shape(g.shape, o.shape) {
		out := make([]float64, len(g.data))
		floats.MulTo(out, g.data, o.data)
		return &Grid{shape: g.shape, data: out}
	}
	return zip_with(g, o, func(x, y float64) float64 { return x * y })
}

func (g *Grid) div(o *Grid) *Grid {
	if same_shape(g.shape, o.shape) {
		out := make([]float64, len(g.data))
		floats.DivTo(out, g.data, o.data)
		return &Grid{shape: g.shape, data: out}
	}
	return zip_with(g, o, func(x, y float64) float64 { return x / y })
}

// Elementwise multiplication by a constant.
func (g *Grid) scale(c float64) *Grid {
	out := make([]float64, len(g.data))
	copy(out, g.data)
	floats.Scale(c, out)
	return &Grid{shape: g.shape, data: out}
}

// Elementwise addition of a constant.
func (g *Grid) shift(c float64) *Grid {
	return apply(g, func(v float64) float64 { return v + c })
}

// Elementwise x^p. Follows math.Pow: a negative base with a fractional
// exponent yields NaN, which propagates as missing data.
func (g *Grid) pow(p float64) *Grid {
	return apply(g, func(v float64) float64 { return math.Pow(v, p) })
}

// Elementwise clamp into [lo, hi]. NaN passes through.
func (g *Grid) clip(lo, hi float64) *Grid {
	return apply(g, func(v float64) float64 {
		return math.Min(math.Max(v, lo), hi)
	})
}

/*
Largest absolute elementwise difference between two same-shaped grids,
reduced to a single scalar. Any NaN makes the result NaN, so a residual
gate comparing against a tolerance never passes while missing data is
present in the working estimate.
*/
func max_abs_diff(a, b *Grid) float64 {
	if !same_shape(a.shape, b.shape) {
		panic(fmt.Sprintf("grid: max_abs_diff on shapes %v and %v", a.shape, b.shape))
	}
	m := 0.0
	for i := range a.data {
		d := math.Abs(a.data[i] - b.data[i])
		if math.IsNaN(d) {
			return math.NaN()
		}
		if d > m {
			m = d
		}
	}
	return m
}

/*
Mean over the leading (time) axis, ignoring NaN cells.
Cells that are NaN at every step stay NaN in the output.
*/
func nanmean_axis0(g *Grid) *Grid {
	if g.Rank() < 1 {
		panic("grid: nanmean_axis0 requires rank >= 1")
	}
	nt := g.shape[0]
	rest := len(g.data) / nt
	sum := make([]float64, rest)
	count := make([]int, rest)
	for t := 0; t < nt; t++ {
		base := t * rest
		for i := 0; i < rest; i++ {
			v := g.data[base+i]
			if !math.IsNaN(v) {
				sum[i] += v
				count[i]++
			}
		}
	}
	out := make([]float64, rest)
	for i := 0; i < rest; i++ {
		if count[i] == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum[i] / float64(count[i])
		}
	}
	shape := make([]int, len(g.shape)-1)
	copy(shape, g.shape[1:])
	return NewGrid(shape, out)
}
