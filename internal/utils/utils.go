package utils

import (
	"math"
)

const earthRadiusM = 6371000.0

// CoordDistance returns the great-circle distance in meters between two
// WGS84 positions (haversine formula).
func CoordDistance(lat1 float64, lon1 float64, lat2 float64, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Pow(math.Sin(dPhi/2), 2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Pearson computes the correlation coefficient of two aligned series with the
// classic two-pass formula. The second return value is false when the
// coefficient is undefined: fewer than 3 points, or one of the series has no
// variance.
func Pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 3 {
		return 0, false
	}

	var mx, my float64
	for i := 0; i < n; i++ {
		mx += x[i]
		my += y[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var num, dx, dy float64
	for i := 0; i < n; i++ {
		a := x[i] - mx
		b := y[i] - my
		num += a * b
		dx += a * a
		dy += b * b
	}

	if dx <= 0 || dy <= 0 {
		return 0, false
	}
	return num / math.Sqrt(dx*dy), true
}

// PopulationStd is the standard deviation with denominator N, used to
// characterize a full observed series rather than a sample.
func PopulationStd(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return 0
	}

	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(n)

	var sum float64
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
