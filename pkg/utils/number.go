package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Ratio divide numerator por denominator com duas casas, retornando 0 quando o denominador é 0
func Ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}

	return RoundWithTwoDecimalPlace(float64(numerator) / float64(denominator))
}
