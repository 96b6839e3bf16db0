package norms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fabplan.dev/backend/internal/constant"
)

func TestRound(t *testing.T) {
	assert.Equal(t, 1.2, Round(1.24))
	assert.Equal(t, 1.3, Round(1.25))
	assert.Equal(t, 0.1, Round(0.0))
	assert.Equal(t, 0.1, Round(0.04))
	assert.Equal(t, 0.1, Round(-3))
}

func TestProfileCutHours(t *testing.T) {
	assert.Equal(t, 5.0, ProfileCutHours(2, false))
	// crane-assisted units cost half more on the saw
	assert.Equal(t, 7.5, ProfileCutHours(2, true))
}

func TestSheetCutHoursThicknessBands(t *testing.T) {
	assert.Equal(t, 3.0, SheetCutHours(1, 4))
	assert.Equal(t, 2.2, SheetCutHours(1, 6))
	assert.Equal(t, 2.2, SheetCutHours(1, 20))
	assert.Equal(t, 1.6, SheetCutHours(1, 30))
	// unknown thickness keeps the medium band
	assert.Equal(t, 2.2, SheetCutHours(1, 0))
	assert.Equal(t, 2.2, SheetCutHours(1, -1))
}

func TestWeldAssemblyHours(t *testing.T) {
	assert.Equal(t, 8.0, WeldAssemblyHours(1, constant.ComplexitySimple))
	assert.Equal(t, 12.0, WeldAssemblyHours(1, constant.ComplexityMedium))
	assert.Equal(t, 18.0, WeldAssemblyHours(1, constant.ComplexityComplex))
	// unknown complexity falls back to medium
	assert.Equal(t, 12.0, WeldAssemblyHours(1, "weird"))
}

func TestFittingHours(t *testing.T) {
	// small: no transport surcharge
	assert.Equal(t, 3.0, FittingHours(1, constant.ComplexitySimple, constant.SizeSmall))
	// large medium-complexity: 3 + 3*0.2 + 1.5 = 5.1
	assert.Equal(t, 5.1, FittingHours(1, constant.ComplexityMedium, constant.SizeLarge))
	// xlarge complex: 4.5 + 4.5*0.35 + 2 = 8.075 -> 8.1
	assert.Equal(t, 8.1, FittingHours(1, constant.ComplexityComplex, constant.SizeXLarge))
}

func TestPaintingHours(t *testing.T) {
	assert.Equal(t, 3.0, PaintingHours(2, constant.ComplexitySimple))
	assert.Equal(t, 4.0, PaintingHours(2, constant.ComplexityMedium))
}

func TestSizeCategoryForLength(t *testing.T) {
	assert.Equal(t, constant.SizeSmall, SizeCategoryForLength(1500))
	assert.Equal(t, constant.SizeMedium, SizeCategoryForLength(1501))
	assert.Equal(t, constant.SizeMedium, SizeCategoryForLength(6000))
	assert.Equal(t, constant.SizeLarge, SizeCategoryForLength(12000))
	assert.Equal(t, constant.SizeXLarge, SizeCategoryForLength(12001))
}

func TestSizeParamsFor(t *testing.T) {
	assert.False(t, SizeParamsFor(constant.SizeSmall).RequiresLarge)
	assert.True(t, SizeParamsFor(constant.SizeLarge).RequiresLarge)
	assert.True(t, SizeParamsFor(constant.SizeXLarge).RequiresLarge)
	// unknown size falls back to medium
	assert.Equal(t, SizeParamsFor(constant.SizeMedium), SizeParamsFor("huge"))
}
