package tiling

import "testing"

func TestMasterStack_SingleWindowGetsFullScreen(t *testing.T) {
	screen := Full(800, 600)

	positions := MasterStack(1, screen)
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0] != screen {
		t.Fatalf("expected %+v, got %+v", screen, positions[0])
	}
}

func TestMasterStack_NoWindows(t *testing.T) {
	if got := MasterStack(0, Full(800, 600)); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestMasterStack_Splits(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		screen Rect
		want   []Rect
	}{
		{
			name:   "two windows",
			count:  2,
			screen: Full(800, 600),
			want: []Rect{
				{X: 0, Y: 0, Width: 400, Height: 600},
				{X: 400, Y: 0, Width: 400, Height: 600},
			},
		},
		{
			name:   "five windows",
			count:  5,
			screen: Full(800, 600),
			want: []Rect{
				{X: 0, Y: 0, Width: 400, Height: 600},
				{X: 400, Y: 0, Width: 400, Height: 150},
				{X: 400, Y: 150, Width: 400, Height: 150},
				{X: 400, Y: 300, Width: 400, Height: 150},
				{X: 400, Y: 450, Width: 400, Height: 150},
			},
		},
		{
			// 601 / 3 = 200 and 801 / 2 = 400: remainders are dropped.
			name:   "odd screen drops remainder",
			count:  4,
			screen: Full(801, 601),
			want: []Rect{
				{X: 0, Y: 0, Width: 400, Height: 601},
				{X: 400, Y: 0, Width: 400, Height: 200},
				{X: 400, Y: 200, Width: 400, Height: 200},
				{X: 400, Y: 400, Width: 400, Height: 200},
			},
		},
		{
			name:   "offset screen",
			count:  2,
			screen: Rect{X: 100, Y: 50, Width: 200, Height: 100},
			want: []Rect{
				{X: 100, Y: 50, Width: 100, Height: 100},
				{X: 200, Y: 50, Width: 100, Height: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MasterStack(tt.count, tt.screen)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d positions, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("position %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTranslateAndContains(t *testing.T) {
	r := Translate(Rect{X: 0, Y: 0, Width: 10, Height: 10}, 1920, 0)
	if r.X != 1920 || r.Y != 0 {
		t.Fatalf("unexpected translation: %+v", r)
	}
	if !Contains(r, 1925, 5) {
		t.Fatalf("expected point inside %+v", r)
	}
	if Contains(r, 1930, 5) {
		t.Fatalf("right edge must be exclusive")
	}
}
