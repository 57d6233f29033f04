// Package units provides dimension-tagged scalar quantities for the
// simulator. Error-model values (errormodel.Model.Eval) carry their
// dimension as a Quantity so that incompatible arithmetic fails at the
// point of use instead of silently producing a wrong number; the other
// measurands pass between packages as plain float64 in canonical units.
// The package also parses value-and-unit strings and converts between
// dB/linear and degrees/radians.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pv/radarsim/internal/simerr"
)

// Dimension tags a Quantity's physical unit.
type Dimension int

const (
	Dimensionless Dimension = iota
	Seconds
	Meters
	MetersPerSecond
	Hertz
	Radians
	Degrees
	Watts
	Decibels
)

func (d Dimension) String() string {
	switch d {
	case Dimensionless:
		return ""
	case Seconds:
		return "s"
	case Meters:
		return "m"
	case MetersPerSecond:
		return "m/s"
	case Hertz:
		return "Hz"
	case Radians:
		return "rad"
	case Degrees:
		return "deg"
	case Watts:
		return "W"
	case Decibels:
		return "dB"
	default:
		return "?"
	}
}

// Quantity is a magnitude paired with its Dimension.
type Quantity struct {
	Value     float64
	Dimension Dimension
}

// Q constructs a Quantity.
func Q(value float64, dim Dimension) Quantity {
	return Quantity{Value: value, Dimension: dim}
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g%s", q.Value, q.Dimension)
}

// Add returns q+other. Both operands must share a dimension, except
// that Decibels add as multiplication of their linear ratios (§3).
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if q.Dimension != other.Dimension {
		return Quantity{}, &simerr.UnitError{Err: fmt.Errorf("cannot add %s to %s", other.Dimension, q.Dimension)}
	}
	if q.Dimension == Decibels {
		return Quantity{Value: LinearToDB(DBToLinear(q.Value) * DBToLinear(other.Value)), Dimension: Decibels}, nil
	}
	return Quantity{Value: q.Value + other.Value, Dimension: q.Dimension}, nil
}

// MustAdd panics on dimension mismatch; for use where the caller has
// already established the operands are compatible.
func (q Quantity) MustAdd(other Quantity) Quantity {
	r, err := q.Add(other)
	if err != nil {
		panic(err)
	}
	return r
}

// Sub returns q-other (linear dimensions only).
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if q.Dimension != other.Dimension {
		return Quantity{}, &simerr.UnitError{Err: fmt.Errorf("cannot subtract %s from %s", other.Dimension, q.Dimension)}
	}
	return Quantity{Value: q.Value - other.Value, Dimension: q.Dimension}, nil
}

// Scale multiplies the magnitude by a dimensionless factor.
func (q Quantity) Scale(factor float64) Quantity {
	return Quantity{Value: q.Value * factor, Dimension: q.Dimension}
}

// DBToLinear converts a decibel value to a linear power ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDB converts a linear power ratio to decibels.
func LinearToDB(linear float64) float64 {
	return 10 * math.Log10(linear)
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// ParseValueUnit parses a "<value> <unit>" string such as "0.1 dB" or
// "1e-3 s" into a float and a Dimension. Mirrors parse_value_and_unit
// in the source implementation: value then whitespace-separated unit,
// unit optional.
func ParseValueUnit(s string) (float64, Dimension, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	switch len(fields) {
	case 1:
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, Dimensionless, fmt.Errorf("units: invalid value %q: %w", s, err)
		}
		return v, Dimensionless, nil
	case 2:
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, Dimensionless, fmt.Errorf("units: invalid value %q: %w", s, err)
		}
		dim, err := ParseUnit(fields[1])
		if err != nil {
			return 0, Dimensionless, err
		}
		return v, dim, nil
	default:
		return 0, Dimensionless, fmt.Errorf("units: invalid value-and-unit string %q", s)
	}
}

// ParseUnit maps a unit suffix to its Dimension.
func ParseUnit(unit string) (Dimension, error) {
	switch strings.ToLower(unit) {
	case "s", "sec", "second", "seconds":
		return Seconds, nil
	case "m", "meter", "meters":
		return Meters, nil
	case "m/s", "mps":
		return MetersPerSecond, nil
	case "hz", "hertz":
		return Hertz, nil
	case "rad", "radian", "radians":
		return Radians, nil
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "w", "watt", "watts":
		return Watts, nil
	case "db", "decibel", "decibels":
		return Decibels, nil
	case "%", "percent":
		return Dimensionless, nil
	default:
		return Dimensionless, fmt.Errorf("units: unknown unit %q", unit)
	}
}
