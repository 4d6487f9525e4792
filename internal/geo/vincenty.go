package geo

import (
	"errors"
	"math"
)

// ErrNoConvergence is returned when the Vincenty iteration exceeds its
// iteration cap or hits a trigonometric domain error. Callers must not use
// the partial result.
var ErrNoConvergence = errors.New("geodesic inverse did not converge")

// Ellipsoid holds the reference ellipsoid parameters for geodesic solutions.
type Ellipsoid struct {
	SemiMajorM float64 // semi-major axis in meters
	Flattening float64
}

// WGS84 is the default reference ellipsoid.
var WGS84 = Ellipsoid{SemiMajorM: 6378137.0, Flattening: 1 / 298.257223563}

const (
	// convergenceTol bounds the change in the longitude-difference iterate.
	convergenceTol = 1e-9
	// maxIterations is a hard cap guaranteeing termination near-antipodal
	// points where the iteration oscillates.
	maxIterations = 100
)

// Inverse solves the inverse geodesic problem between two points using
// Vincenty's iterative method. It returns the ellipsoidal distance in meters
// and the forward and back azimuths in degrees.
//
// Numerically identical points short-circuit to (0, 0, 0). A result is only
// valid when the returned error is nil.
func Inverse(a, b Point, e Ellipsoid) (distanceM, fwdAzimuthDeg, backAzimuthDeg float64, err error) {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0, 0, 0, nil
	}

	f := e.Flattening
	semiMinor := e.SemiMajorM * (1 - f)

	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	// Reduced latitudes.
	u1 := math.Atan((1 - f) * math.Tan(phi1))
	u2 := math.Atan((1 - f) * math.Tan(phi2))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := deltaLon
	var sinSigma, cosSigma, sigma, sinAlpha, cosSqAlpha, cos2SigmaM float64

	converged := false
	for i := 0; i < maxIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma = math.Sqrt(math.Pow(cosU2*sinLambda, 2) +
			math.Pow(cosU1*sinU2-sinU1*cosU2*cosLambda, 2))
		if sinSigma == 0 {
			// Coincident points after reduction.
			return 0, 0, 0, nil
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha == 0 {
			// Both points on the equator.
			cos2SigmaM = 0
		} else {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}
		c := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev := lambda
		lambda = deltaLon + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
		if math.IsNaN(lambda) {
			return 0, 0, 0, ErrNoConvergence
		}
		if math.Abs(lambda-prev) < convergenceTol {
			converged = true
			break
		}
	}
	if !converged {
		return 0, 0, 0, ErrNoConvergence
	}

	uSq := cosSqAlpha * (e.SemiMajorM*e.SemiMajorM - semiMinor*semiMinor) / (semiMinor * semiMinor)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	distanceM = semiMinor * bigA * (sigma - deltaSigma)

	sinLambda, cosLambda := math.Sincos(lambda)
	fwdAzimuthDeg = math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda) * 180 / math.Pi
	backAzimuthDeg = math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda) * 180 / math.Pi
	if math.IsNaN(distanceM) || math.IsNaN(fwdAzimuthDeg) || math.IsNaN(backAzimuthDeg) {
		return 0, 0, 0, ErrNoConvergence
	}
	return distanceM, fwdAzimuthDeg, backAzimuthDeg, nil
}
