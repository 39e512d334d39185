package domain

// Step is a screen in the booking journey, in the order the user meets them.
type Step int

const (
	StepPostcode Step = iota
	StepPlacement
	StepWaste
	StepSize
	StepItems
	StepDates
	StepSearching
	StepProviders
	StepDetails
	StepReview
	StepSubmitting
	StepConfirmed
)

// Steps lists every step in journey order.
var Steps = []Step{
	StepPostcode, StepPlacement, StepWaste, StepSize, StepItems, StepDates,
	StepSearching, StepProviders, StepDetails, StepReview, StepSubmitting,
	StepConfirmed,
}

// String returns a human-readable step name.
func (s Step) String() string {
	switch s {
	case StepPostcode:
		return "postcode"
	case StepPlacement:
		return "placement"
	case StepWaste:
		return "waste"
	case StepSize:
		return "size"
	case StepItems:
		return "items"
	case StepDates:
		return "dates"
	case StepSearching:
		return "searching"
	case StepProviders:
		return "providers"
	case StepDetails:
		return "details"
	case StepReview:
		return "review"
	case StepSubmitting:
		return "submitting"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Transient reports whether the step advances on its own after a delay.
func (s Step) Transient() bool {
	return s == StepSearching || s == StepSubmitting
}
