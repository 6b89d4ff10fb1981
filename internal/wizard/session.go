package wizard

import (
	"errors"

	"github.com/google/uuid"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

var (
	ErrAtFirstStep      = errors.New("wizard: already at first step")
	ErrAtFinalStep      = errors.New("wizard: only submission leaves the final step")
	ErrNotAtFinalStep   = errors.New("wizard: submission only allowed from the final step")
	ErrSessionFinished  = errors.New("wizard: session already submitted")
	ErrSessionCancelled = errors.New("wizard: session cancelled")
)

// Draft holds everything the wizard collects before submission. Retreating
// never clears it; only cancelling the session discards it.
type Draft struct {
	Customer        domain.Customer
	PaymentMethod   domain.PaymentMethod
	ServiceRef      string
	StaffPreference domain.StaffPreference
	StaffRef        string
	Date            string
	Time            string
	Notes           string
}

// Session is one run of a checkout or booking flow. It is created when the
// user opens the surface and destroyed on successful submission or explicit
// cancellation; the cart outlives it.
type Session struct {
	ID     string
	Tenant string
	Flow   FlowKind
	Draft  Draft

	steps     []Step
	idx       int
	cancelled bool
}

func NewPurchaseSession(tenant string) *Session {
	return newSession(tenant, FlowPurchase)
}

func NewBookingSession(tenant string) *Session {
	return newSession(tenant, FlowBooking)
}

func newSession(tenant string, flow FlowKind) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Tenant: tenant,
		Flow:   flow,
		steps:  flowSteps[flow],
	}
}

func (s *Session) Step() Step { return s.steps[s.idx] }

func (s *Session) Submitted() bool { return s.Step().IsTerminal() }

// atFinalStep reports whether the session sits on the last collectable step,
// the only position from which submission may be triggered.
func (s *Session) atFinalStep() bool { return s.idx == len(s.steps)-2 }

// Advance moves to the next step if the current step's guard passes. It never
// enters the terminal step; that transition belongs to MarkSubmitted alone.
func (s *Session) Advance() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.atFinalStep() {
		return ErrAtFinalStep
	}
	if verr := validate(s.Flow, s.Step(), s.Draft); verr != nil {
		return verr
	}
	s.idx++
	return nil
}

// Retreat steps back without discarding any collected data.
func (s *Session) Retreat() error {
	if err := s.usable(); err != nil {
		return err
	}
	if s.idx == 0 {
		return ErrAtFirstStep
	}
	s.idx--
	return nil
}

// Validate runs the current step's guard without transitioning, so callers
// can grey out the advance control.
func (s *Session) Validate() error {
	if verr := validate(s.Flow, s.Step(), s.Draft); verr != nil {
		return verr
	}
	return nil
}

// ReadyToSubmit reports whether a submission may be triggered: the session
// must sit on the final collectable step with that step's guard passing.
// Callers check it before composing or dispatching anything, so an
// unvalidated session never reaches the network.
func (s *Session) ReadyToSubmit() error {
	if err := s.usable(); err != nil {
		return err
	}
	if !s.atFinalStep() {
		return ErrNotAtFinalStep
	}
	if verr := validate(s.Flow, s.Step(), s.Draft); verr != nil {
		return verr
	}
	return nil
}

// MarkSubmitted moves the session into its terminal step. Only a successful
// submission from the final collectable step may call it; a failed submission
// leaves the session exactly where it was, draft intact.
func (s *Session) MarkSubmitted() error {
	if err := s.ReadyToSubmit(); err != nil {
		return err
	}
	s.idx++
	return nil
}

// Cancel discards the session before submission. The cart is untouched.
func (s *Session) Cancel() error {
	if s.Submitted() {
		return ErrSessionFinished
	}
	s.cancelled = true
	return nil
}

func (s *Session) Cancelled() bool { return s.cancelled }

func (s *Session) usable() error {
	if s.cancelled {
		return ErrSessionCancelled
	}
	if s.Submitted() {
		return ErrSessionFinished
	}
	return nil
}
