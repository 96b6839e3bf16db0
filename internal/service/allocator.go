package service

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/pkg/workcal"
)

// demand is one unit of work the allocator must place: either an order's
// aggregated cutting for one cutting stage, or a single mark operation.
type demand struct {
	orderID     int
	orderNumber string
	priority    int
	deadline    time.Time
	simulated   bool

	markID      int
	operationID int
	stage       string
	label       string
	seq         int
	hours       float64
	dependsOn   []string
	needsLarge  bool
	preferred   []int
	dryingHours float64
}

// placement is the outcome of a successful allocation. end is the last
// working day; drying, when present, extends occupancy past it.
type placement struct {
	resourceID int
	start      time.Time
	end        time.Time
}

// allocator owns the load matrix of one run and performs greedy
// earliest-feasible placement over the working calendar.
type allocator struct {
	today   time.Time
	horizon time.Time

	load    model.LoadMatrix
	byID    map[int]*model.Resource
	byStage map[string][]*model.Resource
}

func newAllocator(today time.Time, resources []*model.Resource) *allocator {
	a := &allocator{
		today:   workcal.Midnight(today),
		load:    model.LoadMatrix{},
		byID:    map[int]*model.Resource{},
		byStage: map[string][]*model.Resource{},
	}
	a.horizon = a.today.AddDate(0, 0, constant.PlanHorizonDays)

	available := lo.Filter(resources, func(r *model.Resource, _ int) bool {
		return r.Available
	})
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].ResourceID < available[j].ResourceID
	})
	for _, r := range available {
		a.byID[r.ResourceID] = r
		a.byStage[r.Stage] = append(a.byStage[r.Stage], r)
	}
	return a
}

func (a *allocator) booked(resourceID int, day time.Time) float64 {
	days, ok := a.load[resourceID]
	if !ok {
		return 0
	}
	dl, ok := days[workcal.DayKey(day)]
	if !ok {
		return 0
	}
	return dl.Booked
}

func (a *allocator) free(r *model.Resource, day time.Time) float64 {
	f := r.DailyHours - a.booked(r.ResourceID, day)
	if f < 0 {
		return 0
	}
	return f
}

type bookingRef struct {
	resourceID int
	key        string
	hours      float64
}

func (a *allocator) book(r *model.Resource, day time.Time, hours float64, detail *model.BookingDetail) bookingRef {
	key := workcal.DayKey(day)
	days, ok := a.load[r.ResourceID]
	if !ok {
		days = map[string]*model.DayLoad{}
		a.load[r.ResourceID] = days
	}
	dl, ok := days[key]
	if !ok {
		dl = &model.DayLoad{}
		days[key] = dl
	}
	dl.Booked += hours
	dl.Details = append(dl.Details, detail)
	return bookingRef{resourceID: r.ResourceID, key: key, hours: hours}
}

func (a *allocator) unbook(refs []bookingRef) {
	for _, ref := range refs {
		dl := a.load[ref.resourceID][ref.key]
		dl.Booked -= ref.hours
		dl.Details = dl.Details[:len(dl.Details)-1]
	}
}

// eligible returns the candidate resources for a demand, ordered by ID.
// Preferred resources override the stage pool when any of them qualify.
func (a *allocator) eligible(d demand) []*model.Resource {
	qualifies := func(r *model.Resource) bool {
		return r.Stage == d.stage && (!d.needsLarge || r.LargeCapable)
	}

	if len(d.preferred) > 0 {
		preferred := make([]*model.Resource, 0, len(d.preferred))
		for _, id := range d.preferred {
			if r, ok := a.byID[id]; ok && qualifies(r) {
				preferred = append(preferred, r)
			}
		}
		if len(preferred) > 0 {
			sort.SliceStable(preferred, func(i, j int) bool {
				return preferred[i].ResourceID < preferred[j].ResourceID
			})
			return preferred
		}
	}

	return lo.Filter(a.byStage[d.stage], func(r *model.Resource, _ int) bool {
		return qualifies(r)
	})
}

// pick selects the least-loaded eligible resource that still offers enough
// free capacity on day; ties break on the lower resource ID.
func (a *allocator) pick(candidates []*model.Resource, day time.Time, need float64) *model.Resource {
	var best *model.Resource
	var bestBooked float64
	for _, r := range candidates {
		if a.free(r, day) < need {
			continue
		}
		b := a.booked(r.ResourceID, day)
		if best == nil || b < bestBooked {
			best = r
			bestBooked = b
		}
	}
	return best
}

// place books a demand no earlier than earliest. Once a resource accepts the
// first slice, the remainder spills onto following workdays of that same
// resource. On failure the load matrix is left untouched and the reason is
// one of the drop reasons.
func (a *allocator) place(d demand, earliest time.Time) (placement, string) {
	candidates := a.eligible(d)
	if len(candidates) == 0 {
		return placement{}, model.DropReasonNoResource
	}

	if earliest.Before(a.today) {
		earliest = a.today
	}
	day := workcal.EnsureWorkday(earliest)

	detail := func(hours float64, drying bool) *model.BookingDetail {
		return &model.BookingDetail{
			OrderID:     d.orderID,
			OrderNumber: d.orderNumber,
			MarkID:      d.markID,
			Label:       d.label,
			Hours:       hours,
			Simulated:   d.simulated,
			Drying:      drying,
		}
	}

	var (
		resource  *model.Resource
		refs      []bookingRef
		p         placement
		remaining = d.hours
	)
	threshold := constant.MinPlacementHours
	if remaining < threshold {
		threshold = remaining
	}

	for !day.After(a.horizon) {
		if resource == nil {
			resource = a.pick(candidates, day, threshold)
			if resource == nil {
				day = workcal.NextWorkday(day)
				continue
			}
			p.resourceID = resource.ResourceID
			p.start = day
		}
		if f := a.free(resource, day); f > 0 {
			take := remaining
			if f < take {
				take = f
			}
			refs = append(refs, a.book(resource, day, take, detail(take, false)))
			remaining -= take
			if remaining < 1e-9 {
				p.end = day
				a.bookDrying(resource, day, d, detail)
				return p, ""
			}
		}
		day = workcal.NextWorkday(day)
	}

	a.unbook(refs)
	return placement{}, model.DropReasonHorizonExhausted
}

// bookDrying blocks the paint resource for the drying span right after the
// working portion, starting with whatever capacity the final day has left.
// Drying occupies the calendar but is not working time, so it never moves
// the operation's end date.
func (a *allocator) bookDrying(r *model.Resource, lastWorkDay time.Time, d demand, detail func(float64, bool) *model.BookingDetail) {
	remaining := d.dryingHours
	day := lastWorkDay
	for remaining > 1e-9 && !day.After(a.horizon) {
		if f := a.free(r, day); f > 0 {
			take := remaining
			if f < take {
				take = f
			}
			a.book(r, day, take, detail(take, true))
			remaining -= take
		}
		day = workcal.NextWorkday(day)
	}
}
