package risk

// Violation codes. Stable strings so callers and tests can assert on them.
const (
	CodeDailyLossLimit = "DAILY_LOSS_LIMIT"
	CodeMissingFields  = "MISSING_FIELDS"
	CodeLowConfidence  = "LOW_CONFIDENCE"
)

// Decision is the outcome of validating a signal. A rejection carries the
// code and message of the first check that failed; it is a value, never an
// error.
type Decision struct {
	Allowed bool
	Code    string
	Reason  string
}

func reject(code, reason string) Decision {
	return Decision{Code: code, Reason: reason}
}
