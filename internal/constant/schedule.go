package constant

const (
	// PlanHorizonDays bounds the forward day walk of the allocator. An operation
	// that cannot be placed within the horizon is reported as dropped.
	PlanHorizonDays = 365

	// MinPlacementHours is the least free capacity a day must offer before the
	// allocator books an operation (or its remainder, whichever is smaller) there.
	MinPlacementHours = 1.0

	// RemainingHoursEpsilon below which an operation counts as fully completed.
	RemainingHoursEpsilon = 0.05
)

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-Fabplan-Request-ID"
)

const (
	// PlanUpdatedSubject is the NATS subject the re-planning worker publishes on.
	PlanUpdatedSubject = "PLAN.updated"

	PlanStreamName = "fabplan-plans"
)
