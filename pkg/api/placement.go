package api

import (
	"fmt"
	"strings"
)

// Placement describes where a callout is anchored relative to the bounding
// box of its target element. Only the thirteen named values are valid.
type Placement int

const (
	PlacementTopLeft Placement = iota
	PlacementTopCenter
	PlacementTopRight
	PlacementRightTop
	PlacementRightCenter
	PlacementRightBottom
	PlacementBottomRight
	PlacementBottomCenter
	PlacementBottomLeft
	PlacementLeftBottom
	PlacementLeftCenter
	PlacementLeftTop
	PlacementCenter
)

var placementNames = [...]string{
	PlacementTopLeft:      "TopLeft",
	PlacementTopCenter:    "TopCenter",
	PlacementTopRight:     "TopRight",
	PlacementRightTop:     "RightTop",
	PlacementRightCenter:  "RightCenter",
	PlacementRightBottom:  "RightBottom",
	PlacementBottomRight:  "BottomRight",
	PlacementBottomCenter: "BottomCenter",
	PlacementBottomLeft:   "BottomLeft",
	PlacementLeftBottom:   "LeftBottom",
	PlacementLeftCenter:   "LeftCenter",
	PlacementLeftTop:      "LeftTop",
	PlacementCenter:       "Center",
}

// Placements returns all valid placements in declaration order.
func Placements() []Placement {
	out := make([]Placement, len(placementNames))
	for i := range placementNames {
		out[i] = Placement(i)
	}
	return out
}

// Valid reports whether p is one of the thirteen named placements.
func (p Placement) Valid() bool {
	return p >= PlacementTopLeft && p <= PlacementCenter
}

func (p Placement) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Placement(%d)", int(p))
	}
	return placementNames[p]
}

// ParsePlacement parses a placement name. Matching is case-insensitive.
func ParsePlacement(s string) (Placement, error) {
	for i, name := range placementNames {
		if strings.EqualFold(name, s) {
			return Placement(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPlacement, s)
}

func (p Placement) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlacement, int(p))
	}
	return []byte(placementNames[p]), nil
}

func (p *Placement) UnmarshalText(text []byte) error {
	parsed, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PlacementGroup is the side of the target a placement belongs to.
type PlacementGroup string

const (
	GroupTop    PlacementGroup = "top"
	GroupRight  PlacementGroup = "right"
	GroupBottom PlacementGroup = "bottom"
	GroupLeft   PlacementGroup = "left"
	GroupCenter PlacementGroup = "center"
)

// Group returns the row/column the placement belongs to.
func (p Placement) Group() PlacementGroup {
	switch p {
	case PlacementTopLeft, PlacementTopCenter, PlacementTopRight:
		return GroupTop
	case PlacementRightTop, PlacementRightCenter, PlacementRightBottom:
		return GroupRight
	case PlacementBottomRight, PlacementBottomCenter, PlacementBottomLeft:
		return GroupBottom
	case PlacementLeftBottom, PlacementLeftCenter, PlacementLeftTop:
		return GroupLeft
	default:
		return GroupCenter
	}
}

// Direction is the preferred growth direction of a popup from its anchor.
type Direction string

const (
	GrowUp     Direction = "up"
	GrowDown   Direction = "down"
	GrowLeft   Direction = "left"
	GrowRight  Direction = "right"
	GrowCenter Direction = "center"
)

// Direction returns the direction the popup grows away from the target.
func (p Placement) Direction() Direction {
	switch p.Group() {
	case GroupTop:
		return GrowUp
	case GroupRight:
		return GrowRight
	case GroupBottom:
		return GrowDown
	case GroupLeft:
		return GrowLeft
	default:
		return GrowCenter
	}
}

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned box in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether pt lies inside r (right/bottom edges excluded).
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X < r.X+r.W && pt.Y >= r.Y && pt.Y < r.Y+r.H
}

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Anchor returns the point on target's bounding box the callout is attached
// to, and the direction in which it should grow.
func (p Placement) Anchor(target Rect) (Point, Direction) {
	left, right := target.X, target.X+target.W
	top, bottom := target.Y, target.Y+target.H
	midX, midY := target.X+target.W/2, target.Y+target.H/2

	var pt Point
	switch p {
	case PlacementTopLeft:
		pt = Point{left, top}
	case PlacementTopCenter:
		pt = Point{midX, top}
	case PlacementTopRight:
		pt = Point{right, top}
	case PlacementRightTop:
		pt = Point{right, top}
	case PlacementRightCenter:
		pt = Point{right, midY}
	case PlacementRightBottom:
		pt = Point{right, bottom}
	case PlacementBottomRight:
		pt = Point{right, bottom}
	case PlacementBottomCenter:
		pt = Point{midX, bottom}
	case PlacementBottomLeft:
		pt = Point{left, bottom}
	case PlacementLeftBottom:
		pt = Point{left, bottom}
	case PlacementLeftCenter:
		pt = Point{left, midY}
	case PlacementLeftTop:
		pt = Point{left, top}
	default:
		pt = Point{midX, midY}
	}
	return pt, p.Direction()
}

// Layout returns the rectangle a popup of the given size occupies when
// placed against target. No viewport clamping is applied.
func (p Placement) Layout(target Rect, popup Size) Rect {
	anchor, dir := p.Anchor(target)
	out := Rect{W: popup.W, H: popup.H}

	switch dir {
	case GrowUp:
		out.Y = anchor.Y - popup.H
	case GrowDown:
		out.Y = anchor.Y
	case GrowLeft:
		out.X = anchor.X - popup.W
	case GrowRight:
		out.X = anchor.X
	default:
		out.X = anchor.X - popup.W/2
		out.Y = anchor.Y - popup.H/2
		return out
	}

	switch p {
	// Rows: align horizontally.
	case PlacementTopLeft, PlacementBottomLeft:
		out.X = anchor.X
	case PlacementTopCenter, PlacementBottomCenter:
		out.X = anchor.X - popup.W/2
	case PlacementTopRight, PlacementBottomRight:
		out.X = anchor.X - popup.W
	// Columns: align vertically.
	case PlacementRightTop, PlacementLeftTop:
		out.Y = anchor.Y
	case PlacementRightCenter, PlacementLeftCenter:
		out.Y = anchor.Y - popup.H/2
	case PlacementRightBottom, PlacementLeftBottom:
		out.Y = anchor.Y - popup.H
	}
	return out
}
