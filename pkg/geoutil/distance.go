package geoutil

import "math"

const EarthRadiusMeters = 6371000.0

type Point struct {
	Lat float64
	Lon float64
}

// Distance returns the great-circle distance in meters between two points
// given in degrees. NaN inputs propagate to the result.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lon2 - lon1)

	a := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func DistanceBetween(a, b Point) float64 {
	return Distance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// Within reports whether b is at most radius meters away from a. The
// boundary is inclusive.
func Within(a, b Point, radius float64) bool {
	return DistanceBetween(a, b) <= radius
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Valid reports whether p is a real coordinate in degrees.
func (p Point) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lon) &&
		p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// BoundingBox returns the south-west and north-east corners of a box that
// contains every point within radius meters of center. It is meant as a
// cheap prefilter before Distance.
func BoundingBox(center Point, radius float64) (Point, Point) {
	dLat := radius / EarthRadiusMeters * 180 / math.Pi

	dLon := 180.0
	if cos := math.Cos(toRadians(center.Lat)); cos > 1e-9 {
		dLon = math.Min(dLat/cos, 180)
	}

	return Point{Lat: math.Max(center.Lat-dLat, -90), Lon: math.Max(center.Lon-dLon, -180)},
		Point{Lat: math.Min(center.Lat+dLat, 90), Lon: math.Min(center.Lon+dLon, 180)}
}
