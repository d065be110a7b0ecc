package api

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPlacements_ThirteenInGroups(t *testing.T) {
	all := Placements()
	if len(all) != 13 {
		t.Fatalf("expected 13 placements, got %d", len(all))
	}

	groups := map[PlacementGroup]int{}
	for _, p := range all {
		if !p.Valid() {
			t.Fatalf("%v should be valid", p)
		}
		groups[p.Group()]++
	}
	want := map[PlacementGroup]int{GroupTop: 3, GroupRight: 3, GroupBottom: 3, GroupLeft: 3, GroupCenter: 1}
	for g, n := range want {
		if groups[g] != n {
			t.Fatalf("group %s: expected %d placements, got %d", g, n, groups[g])
		}
	}

	if Placement(13).Valid() || Placement(-1).Valid() {
		t.Fatalf("out of range placements must be invalid")
	}
}

func TestParsePlacement(t *testing.T) {
	for _, p := range Placements() {
		got, err := ParsePlacement(p.String())
		if err != nil || got != p {
			t.Fatalf("ParsePlacement(%q) = %v, %v", p.String(), got, err)
		}
	}

	if got, err := ParsePlacement("bottomleft"); err != nil || got != PlacementBottomLeft {
		t.Fatalf("expected case-insensitive match, got %v, %v", got, err)
	}
	if _, err := ParsePlacement("Middle"); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
}

func TestPlacement_JSONUsesNames(t *testing.T) {
	data, err := json.Marshal(struct {
		P Placement `json:"p"`
	}{PlacementRightBottom})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"p":"RightBottom"}` {
		t.Fatalf("unexpected json: %s", data)
	}

	var out struct {
		P Placement `json:"p"`
	}
	if err := json.Unmarshal([]byte(`{"p":"Sideways"}`), &out); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement, got %v", err)
	}
	if _, err := json.Marshal(struct{ P Placement }{Placement(42)}); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("expected ErrInvalidPlacement for invalid value, got %v", err)
	}
}

func TestPlacement_Anchor(t *testing.T) {
	target := Rect{X: 10, Y: 20, W: 40, H: 10}

	tests := []struct {
		p    Placement
		pt   Point
		grow Direction
	}{
		{PlacementTopLeft, Point{10, 20}, GrowUp},
		{PlacementTopCenter, Point{30, 20}, GrowUp},
		{PlacementTopRight, Point{50, 20}, GrowUp},
		{PlacementRightTop, Point{50, 20}, GrowRight},
		{PlacementRightCenter, Point{50, 25}, GrowRight},
		{PlacementRightBottom, Point{50, 30}, GrowRight},
		{PlacementBottomRight, Point{50, 30}, GrowDown},
		{PlacementBottomCenter, Point{30, 30}, GrowDown},
		{PlacementBottomLeft, Point{10, 30}, GrowDown},
		{PlacementLeftBottom, Point{10, 30}, GrowLeft},
		{PlacementLeftCenter, Point{10, 25}, GrowLeft},
		{PlacementLeftTop, Point{10, 20}, GrowLeft},
		{PlacementCenter, Point{30, 25}, GrowCenter},
	}
	for _, tt := range tests {
		pt, dir := tt.p.Anchor(target)
		if pt != tt.pt || dir != tt.grow {
			t.Fatalf("%s: got %v/%s, want %v/%s", tt.p, pt, dir, tt.pt, tt.grow)
		}
	}
}

func TestPlacement_Layout(t *testing.T) {
	target := Rect{X: 10, Y: 20, W: 40, H: 10}
	popup := Size{W: 20, H: 6}

	tests := []struct {
		p    Placement
		want Rect
	}{
		{PlacementTopLeft, Rect{10, 14, 20, 6}},
		{PlacementTopCenter, Rect{20, 14, 20, 6}},
		{PlacementTopRight, Rect{30, 14, 20, 6}},
		{PlacementRightTop, Rect{50, 20, 20, 6}},
		{PlacementRightCenter, Rect{50, 22, 20, 6}},
		{PlacementRightBottom, Rect{50, 24, 20, 6}},
		{PlacementBottomLeft, Rect{10, 30, 20, 6}},
		{PlacementLeftCenter, Rect{-10, 22, 20, 6}},
		{PlacementCenter, Rect{20, 22, 20, 6}},
	}
	for _, tt := range tests {
		if got := tt.p.Layout(target, popup); got != tt.want {
			t.Fatalf("%s: got %+v, want %+v", tt.p, got, tt.want)
		}
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 5}
	if !r.Contains(Point{0, 0}) || !r.Contains(Point{9.5, 4.5}) {
		t.Fatalf("expected points inside")
	}
	if r.Contains(Point{10, 0}) || r.Contains(Point{0, 5}) {
		t.Fatalf("right and bottom edges are excluded")
	}
}
