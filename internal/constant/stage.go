package constant

const (
	StageCutProfile   = "cut_profile"
	StageCutSheet     = "cut_sheet"
	StageRolling      = "rolling"
	StageWeldAssemble = "weld_assemble"
	StageFitting      = "fitting"
	StagePainting     = "painting"
)

// Stages lists every production stage in route order. The slice must not be modified.
var Stages = []string{
	StageCutProfile,
	StageCutSheet,
	StageRolling,
	StageWeldAssemble,
	StageFitting,
	StagePainting,
}

// StageLabelMap maps a stage to its human label on work tickets.
// The map must not be modified.
var StageLabelMap = map[string]string{
	StageCutProfile:   "Profile cutting",
	StageCutSheet:     "Sheet cutting",
	StageRolling:      "Rolling",
	StageWeldAssemble: "Weld assembly",
	StageFitting:      "Fitting",
	StagePainting:     "Painting",
}

const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
	SizeXLarge = "xlarge"
)

const (
	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"
)

const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
)
