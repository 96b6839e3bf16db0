package service

import (
	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/model/types"
	"fabplan.dev/backend/internal/pkg/norms"
)

// Route expands a mark's physical attributes into its ordered operation list
// using the norms table. Generation is deterministic and side-effect free:
// the same attributes always yield the same route.
type Route struct{}

func NewRoute() *Route {
	return &Route{}
}

type routeInput struct {
	markID              int
	tonnage             float64
	complexity          string
	size                string
	maxLengthMM         float64
	hasProfileCut       bool
	hasSheetCut         bool
	needsRolling        bool
	sheetThicknessMM    float64
	heaviestPieceTonnes float64
}

// GenerateForMark derives the route of one mark. A mark with zero or negative
// tonnage is not ready for planning and yields no operations.
func (s *Route) GenerateForMark(mark *model.Mark) []*model.Operation {
	return generateRoute(routeInput{
		markID:              mark.MarkID,
		tonnage:             mark.WeightTonnes,
		complexity:          mark.Complexity,
		size:                mark.SizeCategory,
		maxLengthMM:         mark.MaxLengthMM,
		hasProfileCut:       mark.HasProfileCut,
		hasSheetCut:         mark.HasSheetCut,
		needsRolling:        mark.NeedsRolling,
		sheetThicknessMM:    mark.SheetThicknessMM.Float64,
		heaviestPieceTonnes: mark.HeaviestPieceTonnes,
	})
}

// GenerateForSimulated derives the route of a what-if order's representative
// unit. markID is the synthetic identity the engine assigned to the unit.
func (s *Route) GenerateForSimulated(markID int, sim *types.SimulatedOrder) []*model.Operation {
	return generateRoute(routeInput{
		markID:              markID,
		tonnage:             sim.Tonnage,
		complexity:          sim.Complexity,
		size:                sim.Size,
		hasProfileCut:       sim.HasProfileCut,
		hasSheetCut:         sim.HasSheetCut,
		needsRolling:        sim.NeedsRolling,
		sheetThicknessMM:    sim.SheetThicknessMM.Float64,
		heaviestPieceTonnes: sim.HeaviestPieceTonnes,
	})
}

func generateRoute(in routeInput) []*model.Operation {
	if in.tonnage <= 0 {
		return nil
	}
	if in.size == "" {
		in.size = norms.SizeCategoryForLength(in.maxLengthMM)
	}

	ops := make([]*model.Operation, 0, 6)
	emit := func(stage string, seq int, hours float64, dependsOn []string, needsLarge bool, dryingMinutes float64) {
		ops = append(ops, &model.Operation{
			MarkID:        in.markID,
			Stage:         stage,
			Label:         constant.StageLabelMap[stage],
			Seq:           seq,
			Minutes:       hours * 60,
			DependsOn:     dependsOn,
			NeedsLarge:    needsLarge,
			DryingMinutes: dryingMinutes,
		})
	}

	// Both cutting processes run at sequence 1: an order's cut-list is
	// processed on saw and plasma in parallel.
	emittedCuts := make([]string, 0, 2)
	if in.hasProfileCut {
		heavy := in.heaviestPieceTonnes > norms.HeavyPieceThresholdTonnes
		emit(constant.StageCutProfile, 1, norms.ProfileCutHours(in.tonnage, heavy), nil, false, 0)
		emittedCuts = append(emittedCuts, constant.StageCutProfile)
	}
	if in.hasSheetCut {
		emit(constant.StageCutSheet, 1, norms.SheetCutHours(in.tonnage, in.sheetThicknessMM), nil, false, 0)
		emittedCuts = append(emittedCuts, constant.StageCutSheet)
	}

	seq := 2
	weldDeps := emittedCuts
	if in.needsRolling {
		// Rolling is emitted even without sheet-cut content: the hours are
		// real shop work and must show up in the plan. Without a sheet cut
		// the engine gates rolling on the order's cutting completion alone.
		emit(constant.StageRolling, seq, norms.RollingHours(in.tonnage), []string{constant.StageCutSheet}, false, 0)
		// Rolling takes precedence as the sole upstream of assembly.
		weldDeps = []string{constant.StageRolling}
		seq++
	}

	sizeParams := norms.SizeParamsFor(in.size)
	emit(constant.StageWeldAssemble, seq, norms.WeldAssemblyHours(in.tonnage, in.complexity), weldDeps, sizeParams.RequiresLarge, 0)
	seq++

	emit(constant.StageFitting, seq, norms.FittingHours(in.tonnage, in.complexity, in.size), []string{constant.StageWeldAssemble}, false, 0)
	seq++

	emit(constant.StagePainting, seq, norms.PaintingHours(in.tonnage, in.complexity), []string{constant.StageFitting}, false, norms.DryingHours*60)

	return ops
}
