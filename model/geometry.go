package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point represents a 2D point in user space.
type Point struct {
	X, Y float64
}

// NewPoint creates a point from coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Format renders the point in content-stream operand order ("x y").
func (p Point) Format() string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}

// ParsePoint parses a point from its "x y" form.
func ParsePoint(s string) (Point, error) {
	vals, err := parseFloats(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}

// Rect represents a rectangle by its lower-left corner and extent.
// Width and Height may be negative; the format permits it and the
// rectangle operator passes the values through unchanged.
type Rect struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewRect creates a rectangle from coordinates.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() float64 {
	return r.Y
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() float64 {
	return r.Y + r.Height
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Bottom() && p.Y <= r.Top()
}

// Union returns the smallest rectangle covering both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.Left(), other.Left())
	y := math.Min(r.Bottom(), other.Bottom())
	right := math.Max(r.Right(), other.Right())
	top := math.Max(r.Top(), other.Top())

	return Rect{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// IsEmpty returns true if the rectangle has zero area.
func (r Rect) IsEmpty() bool {
	return r.Width == 0 || r.Height == 0
}

// Format renders the rectangle in content-stream operand order ("x y w h").
func (r Rect) Format() string {
	return formatFloat(r.X) + " " + formatFloat(r.Y) + " " +
		formatFloat(r.Width) + " " + formatFloat(r.Height)
}

// ParseRect parses a rectangle from its "x y w h" form.
func ParseRect(s string) (Rect, error) {
	vals, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rectangle %q: %w", s, err)
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// Matrix represents a 2D affine transformation as the six-element
// row-major form (a b c d e f) used by the cm and Tm operators.
type Matrix [6]float64

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply composes two transformations, this one applied first. The
// row-vector convention means translation accumulates through the e and f
// terms of the product.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translated returns the matrix with its translation replaced by the
// transformed point and the linear part unchanged. This is the text
// positioning composition: moving by (tx, ty) in the space the matrix
// describes only touches the e and f terms.
func (m Matrix) Translated(p Point) Matrix {
	t := m.Transform(p)
	return Matrix{m[0], m[1], m[2], m[3], t.X, t.Y}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}

// Format renders the matrix in content-stream operand order ("a b c d e f").
func (m Matrix) Format() string {
	parts := make([]string, 6)
	for i, v := range m {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, " ")
}

// ParseMatrix parses a matrix from its "a b c d e f" form.
func ParseMatrix(s string) (Matrix, error) {
	vals, err := parseFloats(s, 6)
	if err != nil {
		return Matrix{}, fmt.Errorf("invalid matrix %q: %w", s, err)
	}
	var m Matrix
	copy(m[:], vals)
	return m, nil
}

// formatFloat renders a float in the shortest decimal form that parses
// back exactly. The 'f' format never produces an exponent, which the
// content-stream number grammar does not allow.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseFloats splits s on whitespace and parses exactly n floats.
func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Fields(s)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(fields))
	}

	vals := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", f, err)
		}
		vals[i] = v
	}
	return vals, nil
}
