package types

import "testing"

func TestCategoryStringRoundTrip(t *testing.T) {
	for _, c := range AllTowerCategories {
		if got := TowerCategoryFromString(c.String()); got != c {
			t.Errorf("tower %v: round trip got %v", c, got)
		}
	}
	for _, c := range AllUnitCategories {
		if got := UnitCategoryFromString(c.String()); got != c {
			t.Errorf("unit %v: round trip got %v", c, got)
		}
	}
	if TowerCategoryFromString("laser") != TowerUnknown {
		t.Error("Unknown tower name should map to TowerUnknown")
	}
	if UnitCategoryFromString("") != UnitUnknown {
		t.Error("Empty unit name should map to UnitUnknown")
	}
}

func TestCellIsAdjacent(t *testing.T) {
	tests := []struct {
		name string
		a, b Cell
		want bool
	}{
		{"右侧", Cell{5, 0}, Cell{5, 1}, true},
		{"上方", Cell{5, 3}, Cell{4, 3}, true},
		{"同一格", Cell{2, 2}, Cell{2, 2}, false},
		{"对角", Cell{2, 2}, Cell{3, 3}, false},
		{"跨两格", Cell{2, 2}, Cell{2, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsAdjacent(tt.b); got != tt.want {
				t.Errorf("IsAdjacent(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUnitStateTerminal(t *testing.T) {
	if UnitAdvancing.IsTerminal() {
		t.Error("Advancing should not be terminal")
	}
	if !UnitReachedEnd.IsTerminal() || !UnitDefeated.IsTerminal() {
		t.Error("ReachedEnd and Defeated should be terminal")
	}
}
