package weather

import "math"

// Projection parameters of the meteorological service's Lambert conformal
// conic grid: 5 km spacing, standard parallels at 30 and 60 degrees,
// origin at 126E / 38N mapped to grid offset (43, 136).
const (
	gridEarthRadiusKm = 6371.00877
	gridSpacingKm     = 5.0
	gridStdParallel1  = 30.0
	gridStdParallel2  = 60.0
	gridOriginLon     = 126.0
	gridOriginLat     = 38.0
	gridOffsetX       = 43.0
	gridOffsetY       = 136.0
)

// ConvertGrid maps a WGS84 coordinate to the service's discrete grid cell.
// Pure and total: any finite input yields a cell; coordinates outside the
// service area simply address a cell the upstream has no data for.
func ConvertGrid(lon, lat float64) GridCell {
	const degRad = math.Pi / 180.0

	re := gridEarthRadiusKm / gridSpacingKm
	slat1 := gridStdParallel1 * degRad
	slat2 := gridStdParallel2 * degRad
	olon := gridOriginLon * degRad
	olat := gridOriginLat * degRad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)
	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn
	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	ra := math.Tan(math.Pi*0.25 + lat*degRad*0.5)
	ra = re * sf / math.Pow(ra, sn)

	theta := lon*degRad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	return GridCell{
		Nx: int(math.Floor(ra*math.Sin(theta) + gridOffsetX + 0.5)),
		Ny: int(math.Floor(ro - ra*math.Cos(theta) + gridOffsetY + 0.5)),
	}
}
