package domain

type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanPaused   PlanStatus = "paused"
	PlanDone     PlanStatus = "done"
	PlanArchived PlanStatus = "archived"
)

type UnitKind string

const (
	KindActivity UnitKind = "activity"
	KindSubtask  UnitKind = "subtask"
)

type UnitStatus string

const (
	UnitTodo       UnitStatus = "todo"
	UnitInProgress UnitStatus = "in_progress"
	UnitDone       UnitStatus = "done"
	UnitCancelled  UnitStatus = "cancelled"
)

// ValidUnitStatuses is the canonical set of accepted unit status strings.
var ValidUnitStatuses = map[string]bool{
	"todo": true, "in_progress": true, "done": true, "cancelled": true,
}

// ValidChannels is the canonical set of accepted plan channel strings.
var ValidChannels = map[string]bool{
	"email": true, "social": true, "events": true, "content": true,
	"paid": true, "web": true, "generic": true,
}

// CalendarProvider identifies the external calendar service that owns a
// mirrored event. The value is stored and passed through unchanged.
type CalendarProvider string

const (
	ProviderGoogle  CalendarProvider = "google"
	ProviderOutlook CalendarProvider = "outlook"
)
