package x11

import "testing"

func TestClip(t *testing.T) {
	mon := Monitor{ID: 1, X: 1920, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		name                string
		x, y, width, height int
		want                Monitor
	}{
		{
			name: "top panel spanning both monitors",
			x:    0, y: 32, width: 3840, height: 1048,
			want: Monitor{ID: 1, X: 1920, Y: 32, Width: 1920, Height: 1048},
		},
		{
			name: "dock on the right edge",
			x:    0, y: 0, width: 3790, height: 1080,
			want: Monitor{ID: 1, X: 1920, Y: 0, Width: 1870, Height: 1080},
		},
		{
			name: "work area on another monitor",
			x:    0, y: 0, width: 1920, height: 1080,
			want: mon,
		},
	}

	for _, tt := range tests {
		if got := clip(mon, tt.x, tt.y, tt.width, tt.height); got != tt.want {
			t.Errorf("%s: clip = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
		{ID: 1, X: 1920, Y: 0, Width: 1280, Height: 1024},
	}

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{1919, 1079, 0},
		{1920, 0, 1},
		{3199, 1023, 1},
		{3200, 0, -1},
		{2000, 1050, -1},
	}
	for _, tt := range tests {
		if got := monitorAt(monitors, tt.x, tt.y); got != tt.want {
			t.Errorf("monitorAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
