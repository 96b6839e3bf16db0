package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
)

func testMark() *model.Mark {
	return &model.Mark{
		MarkID:              42,
		OrderID:             7,
		Name:                "B-101",
		WeightTonnes:        2,
		Count:               3,
		SizeCategory:        constant.SizeLarge,
		Complexity:          constant.ComplexityMedium,
		HasProfileCut:       true,
		HasSheetCut:         true,
		NeedsRolling:        true,
		SheetThicknessMM:    null.FloatFrom(8),
		HeaviestPieceTonnes: 2.5,
	}
}

func stages(ops []*model.Operation) []string {
	s := make([]string, 0, len(ops))
	for _, op := range ops {
		s = append(s, op.Stage)
	}
	return s
}

func TestRouteFullMark(t *testing.T) {
	ops := NewRoute().GenerateForMark(testMark())
	require.Len(t, ops, 6)
	assert.Equal(t, []string{
		constant.StageCutProfile,
		constant.StageCutSheet,
		constant.StageRolling,
		constant.StageWeldAssemble,
		constant.StageFitting,
		constant.StagePainting,
	}, stages(ops))

	// both cutting processes run in parallel at sequence 1
	assert.Equal(t, 1, ops[0].Seq)
	assert.Equal(t, 1, ops[1].Seq)
	assert.Equal(t, 2, ops[2].Seq)
	assert.Equal(t, 3, ops[3].Seq)
	assert.Equal(t, 4, ops[4].Seq)
	assert.Equal(t, 5, ops[5].Seq)

	// 2t on the saw with a crane-assisted heaviest piece: 2 * 2.5 * 1.5 = 7.5h
	assert.InDelta(t, 450, ops[0].Minutes, 1e-9)
	// 2t of 8mm sheet: 2 * 2.2 = 4.4h
	assert.InDelta(t, 264, ops[1].Minutes, 1e-9)
	assert.InDelta(t, 240, ops[2].Minutes, 1e-9)
	assert.InDelta(t, 1440, ops[3].Minutes, 1e-9)
	// fitting: 2 * (3 + 3*0.2 + 1.5) = 10.2h
	assert.InDelta(t, 612, ops[4].Minutes, 1e-9)
	assert.InDelta(t, 240, ops[5].Minutes, 1e-9)
}

func TestRouteRollingTakesPrecedence(t *testing.T) {
	ops := NewRoute().GenerateForMark(testMark())
	assert.Equal(t, []string{constant.StageCutSheet}, ops[2].DependsOn)
	// weld waits on rolling alone, never directly on the cuts
	assert.Equal(t, []string{constant.StageRolling}, ops[3].DependsOn)
	assert.Equal(t, []string{constant.StageWeldAssemble}, ops[4].DependsOn)
	assert.Equal(t, []string{constant.StageFitting}, ops[5].DependsOn)
}

func TestRouteWithoutRolling(t *testing.T) {
	mark := testMark()
	mark.NeedsRolling = false
	ops := NewRoute().GenerateForMark(mark)
	require.Len(t, ops, 5)
	// weld depends on every emitted cutting stage
	assert.Equal(t, []string{constant.StageCutProfile, constant.StageCutSheet}, ops[2].DependsOn)
	assert.Equal(t, 2, ops[2].Seq)
}

func TestRouteProfileOnly(t *testing.T) {
	mark := testMark()
	mark.HasSheetCut = false
	mark.NeedsRolling = false
	ops := NewRoute().GenerateForMark(mark)
	require.Len(t, ops, 4)
	assert.Equal(t, []string{constant.StageCutProfile}, ops[1].DependsOn)
}

func TestRouteRollingWithoutSheetCut(t *testing.T) {
	mark := testMark()
	mark.HasSheetCut = false
	ops := NewRoute().GenerateForMark(mark)
	require.Len(t, ops, 5)
	// rolling hours are real shop work and survive the absent sheet cut
	assert.Equal(t, constant.StageRolling, ops[1].Stage)
	assert.InDelta(t, 240, ops[1].Minutes, 1e-9)
	assert.Equal(t, []string{constant.StageRolling}, ops[2].DependsOn)
}

func TestRouteLargeSizeRestrictsWeld(t *testing.T) {
	ops := NewRoute().GenerateForMark(testMark())
	assert.True(t, ops[3].NeedsLarge)

	mark := testMark()
	mark.SizeCategory = constant.SizeSmall
	ops = NewRoute().GenerateForMark(mark)
	assert.False(t, ops[3].NeedsLarge)
}

func TestRouteDryingOnPaintingOnly(t *testing.T) {
	ops := NewRoute().GenerateForMark(testMark())
	for _, op := range ops[:5] {
		assert.Zero(t, op.DryingMinutes, op.Stage)
	}
	assert.InDelta(t, 480, ops[5].DryingMinutes, 1e-9)
}

func TestRouteSizeDerivedFromLength(t *testing.T) {
	mark := testMark()
	mark.SizeCategory = ""
	mark.MaxLengthMM = 9000
	ops := NewRoute().GenerateForMark(mark)
	assert.True(t, ops[3].NeedsLarge)

	mark.MaxLengthMM = 1200
	ops = NewRoute().GenerateForMark(mark)
	assert.False(t, ops[3].NeedsLarge)
}

func TestRouteZeroTonnage(t *testing.T) {
	mark := testMark()
	mark.WeightTonnes = 0
	assert.Empty(t, NewRoute().GenerateForMark(mark))
	mark.WeightTonnes = -1
	assert.Empty(t, NewRoute().GenerateForMark(mark))
}

func TestRouteDeterministic(t *testing.T) {
	r := NewRoute()
	assert.Equal(t, r.GenerateForMark(testMark()), r.GenerateForMark(testMark()))
}
