package enum

// IsZero reports whether the status was never set.
func (e RunStatus) IsZero() bool { return e == RunStatus{} }
