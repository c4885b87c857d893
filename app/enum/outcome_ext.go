package enum

// IsZero reports whether the outcome was never set.
func (e Outcome) IsZero() bool { return e == Outcome{} }

// Label returns the short uppercase tag used in reports.
func (e Outcome) Label() string {
	switch e {
	case OutcomePassed:
		return "PASS"
	case OutcomeFailed:
		return "FAIL"
	case OutcomeSkipped:
		return "SKIP"
	default:
		return "????"
	}
}
