package engine

// Phase is a step of a load run.
type Phase int32

// Run phases in the order a run moves through them. Parsing, Storing and
// Reconciling repeat for every input.
const (
	PhaseIdle Phase = iota
	PhaseDiscovering
	PhaseParsing
	PhaseStoring
	PhaseReconciling
	PhaseReporting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDiscovering:
		return "discovering"
	case PhaseParsing:
		return "parsing"
	case PhaseStoring:
		return "storing"
	case PhaseReconciling:
		return "reconciling"
	case PhaseReporting:
		return "reporting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
