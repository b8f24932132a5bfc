package weather

import "testing"

func TestConvertGridKnownCells(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float64
		want     GridCell
	}{
		{"Seoul City Hall", 126.9780, 37.5665, GridCell{Nx: 60, Ny: 127}},
		{"Busan", 129.0756, 35.1796, GridCell{Nx: 98, Ny: 76}},
		{"Jeju", 126.5312, 33.4996, GridCell{Nx: 53, Ny: 38}},
		{"Bupyeong", 126.7247245, 37.4941629, GridCell{Nx: 55, Ny: 125}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertGrid(tt.lon, tt.lat)
			if got != tt.want {
				t.Fatalf("ConvertGrid(%v, %v) = %+v, want %+v", tt.lon, tt.lat, got, tt.want)
			}
		})
	}
}

func TestConvertGridIsDeterministic(t *testing.T) {
	a := ConvertGrid(126.9780, 37.5665)
	b := ConvertGrid(126.9780, 37.5665)
	if a != b {
		t.Fatalf("conversion not deterministic: %+v vs %+v", a, b)
	}
}
