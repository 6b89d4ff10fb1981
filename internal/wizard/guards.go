package wizard

import (
	"fmt"
	"strings"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
)

// ValidationError reports the fields still blocking a step's guard. It is
// raised before any network call and never reaches the submission client.
type ValidationError struct {
	Step    Step
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wizard: step %s incomplete, missing %s", e.Step, strings.Join(e.Missing, ", "))
}

// validate runs the guard predicate for one step against the current draft.
// A nil return means the step is complete.
func validate(flow FlowKind, step Step, d Draft) *ValidationError {
	var missing []string

	switch step {
	case StepCustomerInfo:
		requireField := func(field, value string) {
			if strings.TrimSpace(value) == "" {
				missing = append(missing, field)
			}
		}
		requireField("name", d.Customer.Name)
		requireField("email", d.Customer.Email)
		requireField("phone", d.Customer.Phone)
		if flow == FlowPurchase {
			requireField("address", d.Customer.Address)
			requireField("postal_code", d.Customer.PostalCode)
		}

	case StepPayment:
		if d.PaymentMethod == "" {
			missing = append(missing, "payment_method")
		}

	case StepConfirmation:
		// Review-only step, nothing to collect.

	case StepServiceSelection:
		if d.ServiceRef == "" {
			missing = append(missing, "service_ref")
		}

	case StepStaffPreference:
		if d.StaffPreference == domain.StaffSpecific && d.StaffRef == "" {
			missing = append(missing, "staff_ref")
		}

	case StepSchedule:
		if d.Date == "" {
			missing = append(missing, "date")
		}
		if d.Time == "" {
			missing = append(missing, "time")
		}
	}

	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Step: step, Missing: missing}
}
