package wizard

type Step string

const (
	StepCustomerInfo     Step = "customer-info"
	StepPayment          Step = "payment"
	StepConfirmation     Step = "confirmation"
	StepServiceSelection Step = "service-selection"
	StepStaffPreference  Step = "staff-preference"
	StepSchedule         Step = "schedule"
	StepSubmitted        Step = "submitted"
)

func (s Step) String() string { return string(s) }

// IsTerminal reports whether the step ends the flow. A submitted session is
// never re-entered; a new flow means a new session.
func (s Step) IsTerminal() bool { return s == StepSubmitted }

type FlowKind string

const (
	FlowPurchase FlowKind = "purchase"
	FlowBooking  FlowKind = "booking"
)

// flowSteps is the full transition table: transitions are strictly linear
// along each slice, so an illegal jump is unrepresentable.
var flowSteps = map[FlowKind][]Step{
	FlowPurchase: {StepCustomerInfo, StepPayment, StepConfirmation, StepSubmitted},
	FlowBooking:  {StepServiceSelection, StepStaffPreference, StepSchedule, StepCustomerInfo, StepSubmitted},
}
