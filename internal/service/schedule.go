package service

import (
	"context"
	"sort"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
	modelcache "fabplan.dev/backend/internal/model/cache"
	"fabplan.dev/backend/internal/model/types"
	"fabplan.dev/backend/internal/pkg/apperr"
	"fabplan.dev/backend/internal/pkg/norms"
	"fabplan.dev/backend/internal/pkg/observability"
	"fabplan.dev/backend/internal/pkg/workcal"
	"fabplan.dev/backend/internal/repo"
)

var cutStages = []string{constant.StageCutProfile, constant.StageCutSheet}

// PlanSnapshot is the frozen input of one scheduling run. The engine reads
// it and a fresh load matrix only, so runs never interfere with each other.
type PlanSnapshot struct {
	Today     time.Time
	Orders    []*model.Order
	Resources []*model.Resource
	Simulated []*types.SimulatedOrder
}

type Schedule struct {
	OrderRepo    *repo.Order
	ResourceRepo *repo.Resource
	RouteService *Route
}

func NewSchedule(orderRepo *repo.Order, resourceRepo *repo.Resource, routeService *Route) *Schedule {
	return &Schedule{
		OrderRepo:    orderRepo,
		ResourceRepo: resourceRepo,
		RouteService: routeService,
	}
}

// Plan returns the committed plan, recomputing on cache miss.
func (s *Schedule) Plan(ctx context.Context) (*model.PlanResult, error) {
	var result model.PlanResult
	calculated, err := modelcache.CommittedPlan.MutexGetSet("latest", &result, func() (model.PlanResult, error) {
		r, err := s.calc(ctx, nil)
		if err != nil {
			return model.PlanResult{}, err
		}
		return *r, nil
	}, 24*time.Hour)
	if err != nil {
		log.Error().Err(err).Msg("failed to produce a committed plan")
		return nil, apperr.ErrPlanNotReady
	}
	if calculated {
		log.Info().Msg("committed plan recomputed on cache miss")
	}
	return &result, nil
}

// Recalculate computes the committed plan from the current backlog and
// replaces the cached copy. The re-planning worker calls this periodically.
func (s *Schedule) Recalculate(ctx context.Context) (*model.PlanResult, error) {
	result, err := s.calc(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := modelcache.CommittedPlan.Set("latest", *result, 24*time.Hour); err != nil {
		return nil, err
	}
	return result, nil
}

// Simulate runs a what-if: the hypothetical orders compete for capacity
// against the full committed backlog over a fresh load matrix. Nothing of
// the run is persisted or cached.
func (s *Schedule) Simulate(ctx context.Context, simulated []*types.SimulatedOrder) (*model.PlanResult, error) {
	return s.calc(ctx, simulated)
}

func (s *Schedule) calc(ctx context.Context, simulated []*types.SimulatedOrder) (*model.PlanResult, error) {
	start := time.Now()

	orders, err := s.OrderRepo.GetActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	resources, err := s.ResourceRepo.GetResources(ctx)
	if err != nil {
		return nil, err
	}

	result := s.Compute(&PlanSnapshot{
		Today:     time.Now(),
		Orders:    orders,
		Resources: resources,
		Simulated: simulated,
	})
	result.GeneratedAt = time.Now().UTC()

	if simulated == nil {
		byReason := map[string]int{}
		for _, d := range result.Dropped {
			byReason[d.Reason]++
		}
		for _, reason := range []string{model.DropReasonNoResource, model.DropReasonHorizonExhausted} {
			observability.PlanDroppedOperations.WithLabelValues(reason).Set(float64(byReason[reason]))
		}
		log.Info().
			Int("orders", len(orders)).
			Int("operations", len(result.Operations)).
			Int("dropped", len(result.Dropped)).
			Dur("elapsed", time.Since(start)).
			Msg("plan computed")
	}

	return result, nil
}

// Compute runs the two-phase greedy allocation over a snapshot. It is pure:
// same snapshot, same plan.
func (s *Schedule) Compute(snap *PlanSnapshot) *model.PlanResult {
	today := workcal.Midnight(snap.Today)
	alloc := newAllocator(today, snap.Resources)

	orders := append([]*model.Order{}, snap.Orders...)
	orders = append(orders, s.expandSimulated(snap.Simulated)...)

	result := &model.PlanResult{
		Simulated:  len(snap.Simulated) > 0,
		Operations: []*model.ScheduledOperation{},
		Timelines:  []*model.OrderTimeline{},
		Dropped:    []*model.DroppedOperation{},
	}
	spans := map[int]*model.OrderTimeline{}

	record := func(d demand, p placement) {
		result.Operations = append(result.Operations, &model.ScheduledOperation{
			OrderID:     d.orderID,
			OrderNumber: d.orderNumber,
			MarkID:      d.markID,
			OperationID: d.operationID,
			Stage:       d.stage,
			Label:       d.label,
			ResourceID:  p.resourceID,
			Hours:       d.hours,
			StartDate:   p.start,
			EndDate:     p.end,
			Simulated:   d.simulated,
		})
		span, ok := spans[d.orderID]
		if !ok {
			span = &model.OrderTimeline{
				OrderID:     d.orderID,
				OrderNumber: d.orderNumber,
				StartDate:   p.start,
				EndDate:     p.end,
				Deadline:    workcal.Midnight(d.deadline),
				Simulated:   d.simulated,
			}
			spans[d.orderID] = span
		}
		if p.start.Before(span.StartDate) {
			span.StartDate = p.start
		}
		if p.end.After(span.EndDate) {
			span.EndDate = p.end
		}
	}
	drop := func(d demand, reason string) {
		result.Dropped = append(result.Dropped, &model.DroppedOperation{
			OrderID:     d.orderID,
			OrderNumber: d.orderNumber,
			MarkID:      d.markID,
			Stage:       d.stage,
			Label:       d.label,
			Hours:       d.hours,
			Reason:      reason,
			Simulated:   d.simulated,
		})
	}

	// Phase 1: cutting is planned per order, not per mark. The whole order's
	// cut-list for a cutting stage is one block of hours.
	cuttingEnd := map[int]time.Time{}
	for _, d := range cuttingDemands(orders) {
		p, reason := alloc.place(d, today)
		if reason != "" {
			drop(d, reason)
			continue
		}
		record(d, p)
		if end, ok := cuttingEnd[d.orderID]; !ok || p.end.After(end) {
			cuttingEnd[d.orderID] = p.end
		}
	}

	// Phase 2: every remaining operation of every mark, gated by its route
	// chain and by the order's cutting completion.
	markEnds := map[int]map[string]time.Time{}
	for _, d := range markDemands(orders) {
		earliest := today
		if end, ok := cuttingEnd[d.orderID]; ok && end.After(earliest) {
			earliest = end
		}
		for _, dep := range d.dependsOn {
			if lo.Contains(cutStages, dep) {
				continue
			}
			end, ok := markEnds[d.markID][dep]
			if !ok {
				log.Warn().
					Int("orderId", d.orderID).
					Int("markId", d.markID).
					Str("stage", d.stage).
					Str("dependsOn", dep).
					Msg("operation depends on a stage absent from its route, treating as satisfied")
				continue
			}
			if end.After(earliest) {
				earliest = end
			}
		}

		p, reason := alloc.place(d, earliest)
		if reason != "" {
			drop(d, reason)
			continue
		}
		record(d, p)
		if markEnds[d.markID] == nil {
			markEnds[d.markID] = map[string]time.Time{}
		}
		markEnds[d.markID][d.stage] = p.end
	}

	for _, span := range spans {
		if span.EndDate.After(span.Deadline) {
			span.Late = true
			span.LateDays = workcal.CalendarDaysBetween(span.Deadline, span.EndDate)
		}
		result.Timelines = append(result.Timelines, span)
	}
	sort.SliceStable(result.Timelines, func(i, j int) bool {
		a, b := result.Timelines[i], result.Timelines[j]
		if a.Simulated != b.Simulated {
			return !a.Simulated
		}
		return a.OrderID < b.OrderID
	})

	result.Load = alloc.load
	return result
}

// expandSimulated turns what-if orders into synthetic single-mark orders with
// generated routes. Negative IDs keep them apart from anything persisted.
func (s *Schedule) expandSimulated(simulated []*types.SimulatedOrder) []*model.Order {
	orders := make([]*model.Order, 0, len(simulated))
	for i, sim := range simulated {
		id := -(i + 1)
		mark := &model.Mark{
			MarkID:              id,
			OrderID:             id,
			Name:                sim.Name,
			WeightTonnes:        sim.Tonnage,
			Count:               1,
			SizeCategory:        sim.Size,
			Complexity:          sim.Complexity,
			HasProfileCut:       sim.HasProfileCut,
			HasSheetCut:         sim.HasSheetCut,
			NeedsRolling:        sim.NeedsRolling,
			SheetThicknessMM:    sim.SheetThicknessMM,
			HeaviestPieceTonnes: sim.HeaviestPieceTonnes,
		}
		mark.Operations = s.RouteService.GenerateForSimulated(id, sim)
		orders = append(orders, &model.Order{
			OrderID:  id,
			Number:   sim.Name,
			Priority: sim.Priority,
			Deadline: sim.Deadline,
			Status:   constant.OrderStatusActive,
			Marks:    []*model.Mark{mark},
		})
	}
	return orders
}

// cuttingDemands aggregates each order's remaining cutting hours per cutting
// stage, sorted by priority, deadline, then order ID.
func cuttingDemands(orders []*model.Order) []demand {
	demands := make([]demand, 0, len(orders)*2)
	for _, o := range orders {
		for _, stage := range cutStages {
			var hours float64
			preferred := map[int]struct{}{}
			linq.From(o.Marks).ForEachT(func(mk *model.Mark) {
				linq.From(mk.Operations).
					WhereT(func(op *model.Operation) bool { return op.Stage == stage }).
					ForEachT(func(op *model.Operation) {
						hours += op.RemainingHours(mk.Count)
						for _, id := range op.PreferredResourceIDs {
							preferred[id] = struct{}{}
						}
					})
			})
			if hours <= constant.RemainingHoursEpsilon {
				continue
			}
			ids := lo.Keys(preferred)
			sort.Ints(ids)
			demands = append(demands, demand{
				orderID:     o.OrderID,
				orderNumber: o.Number,
				priority:    o.Priority,
				deadline:    o.Deadline,
				simulated:   o.OrderID < 0,
				stage:       stage,
				label:       constant.StageLabelMap[stage],
				hours:       norms.Round(hours),
				preferred:   ids,
			})
		}
	}
	sort.SliceStable(demands, func(i, j int) bool {
		a, b := demands[i], demands[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		return a.orderID < b.orderID
	})
	return demands
}

// markDemands expands every non-cutting operation with remaining effort,
// sorted by priority, deadline, mark ID, sequence, then stage.
func markDemands(orders []*model.Order) []demand {
	var demands []demand
	for _, o := range orders {
		for _, mk := range o.Marks {
			for _, op := range mk.Operations {
				if lo.Contains(cutStages, op.Stage) {
					continue
				}
				hours := op.RemainingHours(mk.Count)
				if hours <= constant.RemainingHoursEpsilon {
					continue
				}
				demands = append(demands, demand{
					orderID:     o.OrderID,
					orderNumber: o.Number,
					priority:    o.Priority,
					deadline:    o.Deadline,
					simulated:   o.OrderID < 0,
					markID:      mk.MarkID,
					operationID: op.OperationID,
					stage:       op.Stage,
					label:       op.Label,
					seq:         op.Seq,
					hours:       norms.Round(hours),
					dependsOn:   op.DependsOn,
					needsLarge:  op.NeedsLarge,
					preferred:   op.PreferredResourceIDs,
					dryingHours: op.DryingHoursValue(),
				})
			}
		}
	}
	sort.SliceStable(demands, func(i, j int) bool {
		a, b := demands[i], demands[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if !a.deadline.Equal(b.deadline) {
			return a.deadline.Before(b.deadline)
		}
		if a.markID != b.markID {
			return a.markID < b.markID
		}
		if a.seq != b.seq {
			return a.seq < b.seq
		}
		return a.stage < b.stage
	})
	return demands
}
