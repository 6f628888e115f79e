package spatial

import (
	"math"

	"github.com/jengzang/media-geotag-mapper/internal/models"
)

// WGS84 ellipsoid
const (
	wgs84A = 6378137.0
	wgs84F = 1 / 298.257223563
	wgs84B = wgs84A * (1 - wgs84F)

	vincentyMaxIter   = 200
	vincentyTolerance = 1e-12
)

const deg = math.Pi / 180

// Inverse solves the inverse geodesic problem on WGS84 with Vincenty's formulae.
// It returns the distance in meters and the initial azimuth in degrees.
// ok is false when the iteration does not converge (nearly antipodal points).
func Inverse(lat1, lon1, lat2, lon2 float64) (distance, azimuth float64, ok bool) {
	L := NormalizeLongitude(lon2-lon1) * deg
	U1 := math.Atan((1 - wgs84F) * math.Tan(lat1*deg))
	U2 := math.Atan((1 - wgs84F) * math.Tan(lat2*deg))
	sinU1, cosU1 := math.Sincos(U1)
	sinU2, cosU2 := math.Sincos(U2)

	lambda := L
	var sinSigma, cosSigma, sigma, cosSqAlpha, cos2SigmaM, sinLambda, cosLambda float64

	converged := false
	for i := 0; i < vincentyMaxIter; i++ {
		sinLambda, cosLambda = math.Sincos(lambda)
		sinSigma = math.Hypot(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
		if sinSigma == 0 {
			return 0, 0, true
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		C := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
		prev := lambda
		lambda = L + (1-C)*wgs84F*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda) > math.Pi {
			return 0, 0, false
		}
		if math.Abs(lambda-prev) < vincentyTolerance {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, false
	}

	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A, B := seriesCoefficients(uSq)
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	distance = wgs84B * A * (sigma - deltaSigma)
	azimuth = math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda) / deg
	return distance, azimuth, true
}

// Direct solves the direct geodesic problem: the point reached from (lat, lon)
// after travelling distance meters along the initial azimuth (degrees).
// The returned longitude is not normalized.
func Direct(lat, lon, azimuth, distance float64) (float64, float64) {
	sinAlpha1, cosAlpha1 := math.Sincos(azimuth * deg)
	tanU1 := (1 - wgs84F) * math.Tan(lat*deg)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	uSq := cosSqAlpha * (wgs84A*wgs84A - wgs84B*wgs84B) / (wgs84B * wgs84B)
	A, B := seriesCoefficients(uSq)

	sigma := distance / (wgs84B * A)
	var sinSigma, cosSigma, cos2SigmaM float64
	for i := 0; i < vincentyMaxIter; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sincos(sigma)
		deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		prev := sigma
		sigma = distance/(wgs84B*A) + deltaSigma
		if math.Abs(sigma-prev) < vincentyTolerance {
			break
		}
	}
	cos2SigmaM = math.Cos(2*sigma1 + sigma)
	sinSigma, cosSigma = math.Sincos(sigma)

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	lat2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-wgs84F)*math.Hypot(sinAlpha, tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := wgs84F / 16 * cosSqAlpha * (4 + wgs84F*(4-3*cosSqAlpha))
	L := lambda - (1-C)*wgs84F*sinAlpha*
		(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	return lat2 / deg, lon + L/deg
}

func seriesCoefficients(uSq float64) (float64, float64) {
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	return A, B
}

// NormalizeLongitude wraps a longitude into [-180, 180)
func NormalizeLongitude(lon float64) float64 {
	return math.Mod(math.Mod(lon+180, 360)+360, 360) - 180
}

// GeodesicPoints returns n points (endpoints included) evenly spaced along the
// WGS84 geodesic between two positions. Longitudes are wrapped into [-180, 180).
func GeodesicPoints(lat1, lon1, lat2, lon2 float64, n int) []models.GeoPoint {
	if n < 2 {
		n = 2
	}

	distance, azimuth, ok := Inverse(lat1, lon1, lat2, lon2)
	if !ok {
		points := sphericalInterpolate(lat1, lon1, lat2, lon2, n)
		for i := range points {
			points[i].Lon = NormalizeLongitude(points[i].Lon)
		}
		return points
	}

	points := make([]models.GeoPoint, n)
	points[0] = models.GeoPoint{Lat: lat1, Lon: NormalizeLongitude(lon1)}
	for i := 1; i < n-1; i++ {
		lat, lon := Direct(lat1, lon1, azimuth, distance*fraction(i, n))
		points[i] = models.GeoPoint{Lat: lat, Lon: NormalizeLongitude(lon)}
	}
	points[n-1] = models.GeoPoint{Lat: lat2, Lon: NormalizeLongitude(lon2)}
	return points
}
