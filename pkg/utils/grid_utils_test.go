package utils

import (
	"testing"

	"github.com/Grazulex/Tower/pkg/types"
)

func TestCellCenter(t *testing.T) {
	x, y := CellCenter(types.Cell{Row: 10, Col: 0}, 20)
	if x != 10 || y != 210 {
		t.Errorf("Expected (10, 210), got (%g, %g)", x, y)
	}

	ox, oy := CellOrigin(types.Cell{Row: 2, Col: 3}, 20)
	if ox != 60 || oy != 40 {
		t.Errorf("Expected origin (60, 40), got (%g, %g)", ox, oy)
	}
}

func TestPixelToCell(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   types.Cell
		wantOK bool
	}{
		{"左上角", 0, 0, types.Cell{Row: 0, Col: 0}, true},
		{"格子内部", 45, 25, types.Cell{Row: 1, Col: 2}, true},
		{"右下角最后一格", 799, 399, types.Cell{Row: 19, Col: 39}, true},
		{"超出右边界（UI面板）", 800, 10, types.Cell{}, false},
		{"超出下边界", 10, 400, types.Cell{}, false},
		{"负坐标", -1, 10, types.Cell{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PixelToCell(tt.px, tt.py, 20, 20, 40)
			if ok != tt.wantOK {
				t.Fatalf("Expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Expected 5, got %g", d)
	}
}
