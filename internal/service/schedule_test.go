package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/model/types"
)

// 2026-08-24 is a Monday.
var planToday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

func testEngine() *Schedule {
	return NewSchedule(nil, nil, NewRoute())
}

func testResource(id int, stage string, hours float64, large bool) *model.Resource {
	return &model.Resource{
		ResourceID:   id,
		Name:         stage,
		Stage:        stage,
		DailyHours:   hours,
		LargeCapable: large,
		Available:    true,
	}
}

// fullShop covers every stage with 8h days and two weld cells.
func fullShop() []*model.Resource {
	return []*model.Resource{
		testResource(1, constant.StageCutProfile, 8, false),
		testResource(2, constant.StageCutSheet, 8, false),
		testResource(3, constant.StageRolling, 8, false),
		testResource(4, constant.StageWeldAssemble, 8, true),
		testResource(5, constant.StageWeldAssemble, 8, true),
		testResource(6, constant.StageFitting, 8, false),
		testResource(7, constant.StagePainting, 8, false),
	}
}

// weldOnlyMark routes to weld assembly, fitting and painting without any
// cutting process.
func weldOnlyMark(id int, tonnes float64) *model.Mark {
	return &model.Mark{
		MarkID:       id,
		Name:         "M",
		WeightTonnes: tonnes,
		Count:        1,
		SizeCategory: constant.SizeSmall,
		Complexity:   constant.ComplexitySimple,
	}
}

func profileMark(id int, tonnes float64) *model.Mark {
	mk := weldOnlyMark(id, tonnes)
	mk.HasProfileCut = true
	return mk
}

func testOrder(id int, priority int, deadline time.Time, marks ...*model.Mark) *model.Order {
	route := NewRoute()
	for _, mk := range marks {
		mk.OrderID = id
		mk.Operations = route.GenerateForMark(mk)
	}
	return &model.Order{
		OrderID:  id,
		Number:   "ORD-" + strconv.Itoa(id),
		Priority: priority,
		Deadline: deadline,
		Status:   constant.OrderStatusActive,
		Marks:    marks,
	}
}

func opsByStage(result *model.PlanResult, stage string) []*model.ScheduledOperation {
	var ops []*model.ScheduledOperation
	for _, op := range result.Operations {
		if op.Stage == stage {
			ops = append(ops, op)
		}
	}
	return ops
}

func assertWithinCapacity(t *testing.T, result *model.PlanResult, resources []*model.Resource) {
	t.Helper()
	caps := map[int]float64{}
	for _, r := range resources {
		caps[r.ResourceID] = r.DailyHours
	}
	for resourceID, days := range result.Load {
		for day, dl := range days {
			assert.LessOrEqual(t, dl.Booked, caps[resourceID]+1e-9, "resource %d overbooked on %s", resourceID, day)
			var sum float64
			for _, d := range dl.Details {
				sum += d.Hours
			}
			assert.InDelta(t, dl.Booked, sum, 1e-9, "resource %d ledger mismatch on %s", resourceID, day)

			date, err := time.Parse("2006-01-02", day)
			require.NoError(t, err)
			assert.NotContains(t, []time.Weekday{time.Saturday, time.Sunday}, date.Weekday(), "booking on a weekend")
		}
	}
}

func TestComputeSingleOrderFlow(t *testing.T) {
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), profileMark(1, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	require.Empty(t, result.Dropped)
	require.Len(t, result.Operations, 4)
	assertWithinCapacity(t, result, fullShop())

	cut := opsByStage(result, constant.StageCutProfile)
	require.Len(t, cut, 1)
	assert.InDelta(t, 2.5, cut[0].Hours, 1e-9)
	assert.Equal(t, 1, cut[0].ResourceID)
	assert.Equal(t, planToday, cut[0].StartDate)
	assert.Equal(t, planToday, cut[0].EndDate)
	// aggregated cutting belongs to the order, not to a mark
	assert.Zero(t, cut[0].MarkID)

	require.Len(t, result.Timelines, 1)
	tl := result.Timelines[0]
	assert.Equal(t, 1, tl.OrderID)
	assert.False(t, tl.Late)
	assert.False(t, result.Simulated)
}

func TestComputeCuttingAggregatedPerOrder(t *testing.T) {
	// two marks of the same order share one aggregated cutting block
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), profileMark(1, 1), profileMark(2, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	cut := opsByStage(result, constant.StageCutProfile)
	require.Len(t, cut, 1)
	assert.InDelta(t, 5.0, cut[0].Hours, 1e-9)
}

func TestComputeDependencyOrdering(t *testing.T) {
	// 2t simple: 5h saw, 16h weld spanning two days, then fitting and painting
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), profileMark(1, 2))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	require.Empty(t, result.Dropped)
	weld := opsByStage(result, constant.StageWeldAssemble)[0]
	fit := opsByStage(result, constant.StageFitting)[0]
	paint := opsByStage(result, constant.StagePainting)[0]

	assert.Equal(t, planToday, weld.StartDate)
	assert.Equal(t, planToday.AddDate(0, 0, 1), weld.EndDate)
	assert.False(t, fit.StartDate.Before(weld.EndDate))
	assert.False(t, paint.StartDate.Before(fit.EndDate))
	assertWithinCapacity(t, result, fullShop())
}

func TestComputeCrossPhaseGateSpansDays(t *testing.T) {
	// 8t of profile cutting aggregates to 20h: Monday 8, Tuesday 8,
	// Wednesday 4. No weld of the order may start before Wednesday.
	order := testOrder(1, 1, planToday.AddDate(0, 0, 30), profileMark(1, 4), profileMark(2, 4))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	cut := opsByStage(result, constant.StageCutProfile)
	require.Len(t, cut, 1)
	assert.InDelta(t, 20, cut[0].Hours, 1e-9)
	cuttingEnd := planToday.AddDate(0, 0, 2)
	assert.Equal(t, cuttingEnd, cut[0].EndDate)

	welds := opsByStage(result, constant.StageWeldAssemble)
	require.Len(t, welds, 2)
	for _, w := range welds {
		assert.False(t, w.StartDate.Before(cuttingEnd), "weld for mark %d jumped the cutting gate", w.MarkID)
	}
	assertWithinCapacity(t, result, fullShop())
}

func TestComputeSpilloverSkipsWeekend(t *testing.T) {
	// 48h of welding from Monday: five 8h workdays, then over the weekend
	// onto the next Monday
	order := testOrder(1, 1, planToday, weldOnlyMark(1, 6))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	weld := opsByStage(result, constant.StageWeldAssemble)[0]
	assert.Equal(t, planToday, weld.StartDate)
	assert.Equal(t, planToday.AddDate(0, 0, 7), weld.EndDate)
	// spillover stays on the resource that accepted the first slice
	assert.Equal(t, 4, weld.ResourceID)
	assertWithinCapacity(t, result, fullShop())

	// fitting (18h) and painting (9h) trail the weld: the order closes on
	// the Thursday of the following week
	tl := result.Timelines[0]
	assert.True(t, tl.Late)
	assert.Equal(t, 10, tl.LateDays)
}

func TestComputeRollingWithoutSheetCutIsPlanned(t *testing.T) {
	mk := profileMark(1, 1)
	mk.NeedsRolling = true
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), mk)
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	// the rolling hours neither vanish nor land in the dropped list
	require.Empty(t, result.Dropped)
	rolling := opsByStage(result, constant.StageRolling)
	require.Len(t, rolling, 1)
	assert.InDelta(t, 2.0, rolling[0].Hours, 1e-9)
	assert.Equal(t, 3, rolling[0].ResourceID)
	assert.False(t, rolling[0].StartDate.Before(opsByStage(result, constant.StageCutProfile)[0].EndDate))

	weld := opsByStage(result, constant.StageWeldAssemble)[0]
	assert.False(t, weld.StartDate.Before(rolling[0].EndDate))
}

func TestComputePriorityWinsScarceCapacity(t *testing.T) {
	shop := []*model.Resource{
		testResource(4, constant.StageWeldAssemble, 8, true),
		testResource(6, constant.StageFitting, 8, false),
		testResource(7, constant.StagePainting, 8, false),
	}
	// the more urgent order wins the single weld cell despite its later deadline
	urgent := testOrder(2, 1, planToday.AddDate(0, 0, 30), weldOnlyMark(2, 1))
	relaxed := testOrder(1, 2, planToday.AddDate(0, 0, 1), weldOnlyMark(1, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{relaxed, urgent},
		Resources: shop,
	})

	welds := opsByStage(result, constant.StageWeldAssemble)
	require.Len(t, welds, 2)
	byOrder := map[int]*model.ScheduledOperation{}
	for _, w := range welds {
		byOrder[w.OrderID] = w
	}
	assert.Equal(t, planToday, byOrder[2].StartDate)
	assert.Equal(t, planToday.AddDate(0, 0, 1), byOrder[1].StartDate)
}

func TestComputeLeastLoadedTieBreak(t *testing.T) {
	deadline := planToday.AddDate(0, 0, 14)
	a := testOrder(1, 1, deadline, weldOnlyMark(1, 1))
	b := testOrder(2, 1, deadline, weldOnlyMark(2, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{a, b},
		Resources: fullShop(),
	})

	welds := opsByStage(result, constant.StageWeldAssemble)
	require.Len(t, welds, 2)
	// equal load ties break on the lower resource ID, then the second weld
	// flows to the idle cell on the same day
	assert.Equal(t, 4, welds[0].ResourceID)
	assert.Equal(t, 5, welds[1].ResourceID)
	assert.Equal(t, welds[0].StartDate, welds[1].StartDate)
}

func TestComputeLargeUnitNeedsLargeCell(t *testing.T) {
	shop := []*model.Resource{
		testResource(4, constant.StageWeldAssemble, 8, false),
		testResource(6, constant.StageFitting, 8, false),
		testResource(7, constant.StagePainting, 8, false),
	}
	mk := weldOnlyMark(1, 1)
	mk.SizeCategory = constant.SizeLarge
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), mk)
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: shop,
	})

	require.Len(t, result.Dropped, 1)
	assert.Equal(t, constant.StageWeldAssemble, result.Dropped[0].Stage)
	assert.Equal(t, model.DropReasonNoResource, result.Dropped[0].Reason)

	// downstream operations degrade to unblocked rather than vanishing
	assert.Len(t, opsByStage(result, constant.StageFitting), 1)
	assert.Len(t, opsByStage(result, constant.StagePainting), 1)
}

func TestComputeHorizonExhausted(t *testing.T) {
	shop := []*model.Resource{
		// too small for even the minimum placement slice
		testResource(4, constant.StageWeldAssemble, 0.5, true),
		testResource(6, constant.StageFitting, 8, false),
		testResource(7, constant.StagePainting, 8, false),
	}
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), weldOnlyMark(1, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: shop,
	})

	var reasons []string
	for _, d := range result.Dropped {
		reasons = append(reasons, d.Reason)
	}
	assert.Contains(t, reasons, model.DropReasonHorizonExhausted)
	// a failed placement leaves no residue in the ledger
	assert.Empty(t, result.Load[4])
}

func TestComputeDryingBlocksPaintCalendar(t *testing.T) {
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), weldOnlyMark(1, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	paint := opsByStage(result, constant.StagePainting)[0]
	// 1.5h of painting, then 8h of drying: 6.5h today, 1.5h tomorrow
	assert.Equal(t, planToday, paint.EndDate)

	today := result.Load[7][planToday.Format("2006-01-02")]
	require.NotNil(t, today)
	assert.InDelta(t, 8, today.Booked, 1e-9)

	tomorrow := result.Load[7][planToday.AddDate(0, 0, 1).Format("2006-01-02")]
	require.NotNil(t, tomorrow)
	assert.InDelta(t, 1.5, tomorrow.Booked, 1e-9)
	require.Len(t, tomorrow.Details, 1)
	assert.True(t, tomorrow.Details[0].Drying)
}

func TestComputeActualsShrinkDemand(t *testing.T) {
	mk := weldOnlyMark(1, 1)
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), mk)
	for _, op := range mk.Operations {
		if op.Stage == constant.StageWeldAssemble {
			op.ActualMinutes = 240 // 4 of 8 hours already reported
		}
		if op.Stage == constant.StageFitting {
			op.ActualMinutes = op.Minutes - 1 // practically complete
		}
	}
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	weld := opsByStage(result, constant.StageWeldAssemble)[0]
	assert.InDelta(t, 4, weld.Hours, 1e-9)
	assert.Empty(t, opsByStage(result, constant.StageFitting))
	assert.Empty(t, result.Dropped)
}

func TestComputeSimulationCompetesWithoutPersisting(t *testing.T) {
	order := testOrder(1, 2, planToday.AddDate(0, 0, 14), weldOnlyMark(1, 1))
	base := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})

	sim := &types.SimulatedOrder{
		Name:       "WHATIF-1",
		Priority:   1,
		Deadline:   planToday.AddDate(0, 0, 7),
		Tonnage:    1,
		Complexity: constant.ComplexitySimple,
		Size:       constant.SizeSmall,
	}
	withSim := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
		Simulated: []*types.SimulatedOrder{sim},
	})

	assert.True(t, withSim.Simulated)
	require.Len(t, withSim.Timelines, 2)
	// real orders sort ahead of what-if orders in the forecast
	assert.False(t, withSim.Timelines[0].Simulated)
	assert.True(t, withSim.Timelines[1].Simulated)
	assert.Negative(t, withSim.Timelines[1].OrderID)

	var simOps int
	for _, op := range withSim.Operations {
		if op.Simulated {
			simOps++
			assert.Negative(t, op.OrderID)
		}
	}
	assert.Equal(t, 3, simOps)
	assertWithinCapacity(t, withSim, fullShop())

	// the committed plan is unaffected by the what-if run
	again := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Orders:    []*model.Order{order},
		Resources: fullShop(),
	})
	assert.Equal(t, base, again)
}

func TestComputeDeterministic(t *testing.T) {
	snapshot := func() *PlanSnapshot {
		return &PlanSnapshot{
			Today: planToday,
			Orders: []*model.Order{
				testOrder(1, 1, planToday.AddDate(0, 0, 10), profileMark(1, 2), weldOnlyMark(2, 1)),
				testOrder(2, 1, planToday.AddDate(0, 0, 10), profileMark(3, 1)),
				testOrder(3, 2, planToday.AddDate(0, 0, 5), weldOnlyMark(4, 3)),
			},
			Resources: fullShop(),
		}
	}
	first := testEngine().Compute(snapshot())
	second := testEngine().Compute(snapshot())
	if !assert.Equal(t, first, second) {
		t.Log(spew.Sdump(first, second))
	}
}

func TestComputeEmptyBacklog(t *testing.T) {
	result := testEngine().Compute(&PlanSnapshot{
		Today:     planToday,
		Resources: fullShop(),
	})
	assert.Empty(t, result.Operations)
	assert.Empty(t, result.Timelines)
	assert.Empty(t, result.Dropped)
	assert.Empty(t, result.Load)
}

func TestComputeNoResources(t *testing.T) {
	order := testOrder(1, 1, planToday.AddDate(0, 0, 14), profileMark(1, 1))
	result := testEngine().Compute(&PlanSnapshot{
		Today:  planToday,
		Orders: []*model.Order{order},
	})
	assert.Empty(t, result.Operations)
	require.NotEmpty(t, result.Dropped)
	for _, d := range result.Dropped {
		assert.Equal(t, model.DropReasonNoResource, d.Reason)
	}
}
