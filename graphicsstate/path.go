package graphicsstate

import (
	"github.com/tsawler/pagestream/model"
)

// PathSegmentType defines the type of path segment
type PathSegmentType int

const (
	// PathMoveTo starts a new subpath
	PathMoveTo PathSegmentType = iota
	// PathLineTo draws a line to a point
	PathLineTo
	// PathCurveTo draws a cubic Bezier curve
	PathCurveTo
	// PathClosePath closes the current subpath
	PathClosePath
)

// PathSegment represents a single segment of a path
type PathSegment struct {
	Type PathSegmentType

	// For MoveTo and LineTo: single point.
	// For CurveTo: control point 1, control point 2, end point.
	// For ClosePath: empty.
	Points []model.Point
}

// Path accumulates the segments built by the path construction operators
// between one painting operator and the next. Coordinates stay in user
// space; apply the CTM to place them on the device.
type Path struct {
	Segments []PathSegment

	// CurrentPoint trails the end of the last segment
	CurrentPoint model.Point

	// SubpathStart is where a close returns to
	SubpathStart model.Point

	// HasCurrentPoint indicates whether any segment has started
	HasCurrentPoint bool
}

// NewPath creates a new empty path
func NewPath() *Path {
	return &Path{
		Segments: make([]PathSegment, 0),
	}
}

// MoveTo starts a new subpath at p (m operator)
func (p *Path) MoveTo(pt model.Point) {
	p.Segments = append(p.Segments, PathSegment{
		Type:   PathMoveTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
	p.SubpathStart = pt
	p.HasCurrentPoint = true
}

// LineTo appends a straight segment to pt (l operator). With no current
// point the segment degenerates to a move.
func (p *Path) LineTo(pt model.Point) {
	if !p.HasCurrentPoint {
		p.MoveTo(pt)
		return
	}

	p.Segments = append(p.Segments, PathSegment{
		Type:   PathLineTo,
		Points: []model.Point{pt},
	})
	p.CurrentPoint = pt
}

// CurveTo appends a cubic Bezier segment with control points c1 and c2
// ending at pt (c operator, and the expanded v and y shorthands).
func (p *Path) CurveTo(c1, c2, pt model.Point) {
	if !p.HasCurrentPoint {
		p.MoveTo(c1)
	}

	p.Segments = append(p.Segments, PathSegment{
		Type:   PathCurveTo,
		Points: []model.Point{c1, c2, pt},
	})
	p.CurrentPoint = pt
}

// ClosePath closes the current subpath (h operator)
func (p *Path) ClosePath() {
	if !p.HasCurrentPoint {
		return
	}

	p.Segments = append(p.Segments, PathSegment{
		Type: PathClosePath,
	})
	p.CurrentPoint = p.SubpathStart
}

// Rectangle appends a rectangle as a complete closed subpath (re operator)
func (p *Path) Rectangle(r model.Rect) {
	p.MoveTo(model.Point{X: r.X, Y: r.Y})
	p.LineTo(model.Point{X: r.X + r.Width, Y: r.Y})
	p.LineTo(model.Point{X: r.X + r.Width, Y: r.Y + r.Height})
	p.LineTo(model.Point{X: r.X, Y: r.Y + r.Height})
	p.ClosePath()
}

// Clear resets the path for the next construction sequence
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.HasCurrentPoint = false
}

// IsEmpty returns true if the path has no segments
func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Bounds returns the bounding box of every point on the path, control
// points included. The second result is false for an empty path.
func (p *Path) Bounds() (model.Rect, bool) {
	first := true
	var minX, minY, maxX, maxY float64
	for _, seg := range p.Segments {
		for _, pt := range seg.Points {
			if first {
				minX, maxX = pt.X, pt.X
				minY, maxY = pt.Y, pt.Y
				first = false
				continue
			}
			if pt.X < minX {
				minX = pt.X
			}
			if pt.X > maxX {
				maxX = pt.X
			}
			if pt.Y < minY {
				minY = pt.Y
			}
			if pt.Y > maxY {
				maxY = pt.Y
			}
		}
	}
	if first {
		return model.Rect{}, false
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
