package domain

import (
	"fmt"
	"strings"
)

// Unit tags a temperature value.
type Unit string

// Supported units.
const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ParseUnit accepts "C", "F", "Celsius" or "Fahrenheit" in any case.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius":
		return Celsius, nil
	case "f", "fahrenheit":
		return Fahrenheit, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
}

// CelsiusToFahrenheit converts using F = C × 9/5 + 32.
func CelsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// FahrenheitToCelsius is the inverse of CelsiusToFahrenheit.
func FahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

// ConvertTemperature converts a temperature value between units.
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertTemperature(v float64, from, to Unit) float64 {
	if from == to {
		return v
	}
	if from == Celsius && to == Fahrenheit {
		return CelsiusToFahrenheit(v)
	}
	if from == Fahrenheit && to == Celsius {
		return FahrenheitToCelsius(v)
	}
	return v
}
