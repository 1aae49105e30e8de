package port

// WorkflowMetrics counts booking and lifecycle outcomes.
type WorkflowMetrics interface {
	IncBooking(outcome string)
	IncFollowUpFailure(step string)
	IncTransition(target, outcome string)
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) IncBooking(string)            {}
func (NopMetrics) IncFollowUpFailure(string)    {}
func (NopMetrics) IncTransition(string, string) {}
