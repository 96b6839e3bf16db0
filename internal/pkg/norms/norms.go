// Package norms holds the effort-coefficient table driving route generation.
// All rates are hours per ton of a single fabrication unit; batch quantity is
// applied by the scheduling engine, never here.
package norms

import (
	"math"

	"fabplan.dev/backend/internal/constant"
)

const (
	// CraneCoefficient multiplies profile-cutting effort when the heaviest
	// single piece of a unit exceeds HeavyPieceThresholdTonnes and crane
	// assistance is needed on the saw.
	CraneCoefficient          = 1.5
	HeavyPieceThresholdTonnes = 2.0

	// DryingHours is the fixed paint-drying time. It blocks the paint
	// resource's calendar but is not working time.
	DryingHours = 8.0

	profileCutRate = 2.5
	rollingRate    = 2.0
)

// Sheet-cutting rates by thickness band.
const (
	sheetThinRate   = 3.0
	sheetMediumRate = 2.2
	sheetThickRate  = 1.6

	sheetThinMaxMM   = 6.0
	sheetMediumMaxMM = 20.0
)

var weldAssemblyRateMap = map[string]float64{
	constant.ComplexitySimple:  8.0,
	constant.ComplexityMedium:  12.0,
	constant.ComplexityComplex: 18.0,
}

var fittingCleanRateMap = map[string]float64{
	constant.ComplexitySimple:  2.0,
	constant.ComplexityMedium:  3.0,
	constant.ComplexityComplex: 4.5,
}

var fittingPackRateMap = map[string]float64{
	constant.ComplexitySimple:  1.0,
	constant.ComplexityMedium:  1.5,
	constant.ComplexityComplex: 2.0,
}

var paintingRateMap = map[string]float64{
	constant.ComplexitySimple:  1.5,
	constant.ComplexityMedium:  2.0,
	constant.ComplexityComplex: 3.0,
}

// SizeParams describes the handling consequences of a size band.
type SizeParams struct {
	// RequiresLarge restricts weld assembly to large-capable resources.
	RequiresLarge bool

	// TransportCoeff is the internal transport surcharge applied to the
	// fitting clean rate.
	TransportCoeff float64
}

var sizeParamsMap = map[string]SizeParams{
	constant.SizeSmall:  {RequiresLarge: false, TransportCoeff: 0},
	constant.SizeMedium: {RequiresLarge: false, TransportCoeff: 0.10},
	constant.SizeLarge:  {RequiresLarge: true, TransportCoeff: 0.20},
	constant.SizeXLarge: {RequiresLarge: true, TransportCoeff: 0.35},
}

// Round rounds hours to one decimal place with a floor of 0.1 to avoid
// zero-duration operations.
func Round(hours float64) float64 {
	rounded := math.Round(hours*10) / 10
	if rounded < 0.1 {
		return 0.1
	}
	return rounded
}

// SizeParamsFor returns the handling parameters of a size band; unknown bands
// fall back to medium.
func SizeParamsFor(size string) SizeParams {
	if p, ok := sizeParamsMap[size]; ok {
		return p
	}
	return sizeParamsMap[constant.SizeMedium]
}

// SizeCategoryForLength derives the size band from a unit's maximum physical
// length in millimeters.
func SizeCategoryForLength(lengthMM float64) string {
	switch {
	case lengthMM <= 1500:
		return constant.SizeSmall
	case lengthMM <= 6000:
		return constant.SizeMedium
	case lengthMM <= 12000:
		return constant.SizeLarge
	default:
		return constant.SizeXLarge
	}
}

// ProfileCutHours returns the saw effort for one unit. heavyPiece applies the
// crane coefficient.
func ProfileCutHours(tonnage float64, heavyPiece bool) float64 {
	hours := tonnage * profileCutRate
	if heavyPiece {
		hours *= CraneCoefficient
	}
	return Round(hours)
}

// SheetCutHours returns the plasma effort for one unit. A non-positive
// thickness falls into the medium band.
func SheetCutHours(tonnage, thicknessMM float64) float64 {
	rate := sheetMediumRate
	switch {
	case thicknessMM <= 0:
		// thickness unknown, keep the medium band
	case thicknessMM < sheetThinMaxMM:
		rate = sheetThinRate
	case thicknessMM <= sheetMediumMaxMM:
		rate = sheetMediumRate
	default:
		rate = sheetThickRate
	}
	return Round(tonnage * rate)
}

func RollingHours(tonnage float64) float64 {
	return Round(tonnage * rollingRate)
}

func WeldAssemblyHours(tonnage float64, complexity string) float64 {
	return Round(tonnage * complexityRate(weldAssemblyRateMap, complexity))
}

// FittingHours covers cleaning, internal transport and packing in one
// operation: tonnage × (clean + clean×transport + pack).
func FittingHours(tonnage float64, complexity, size string) float64 {
	clean := complexityRate(fittingCleanRateMap, complexity)
	pack := complexityRate(fittingPackRateMap, complexity)
	transport := SizeParamsFor(size).TransportCoeff
	return Round(tonnage * (clean + clean*transport + pack))
}

func PaintingHours(tonnage float64, complexity string) float64 {
	return Round(tonnage * complexityRate(paintingRateMap, complexity))
}

func complexityRate(m map[string]float64, complexity string) float64 {
	if r, ok := m[complexity]; ok {
		return r
	}
	return m[constant.ComplexityMedium]
}
