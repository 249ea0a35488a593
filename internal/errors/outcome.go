package errors

// Outcome is the structured result of a store operation. It lets callers
// distinguish a success, a failure that carries a user-facing message, and a
// failure that was recovered silently (logged, prior state kept).
type Outcome struct {
	Success   bool
	Message   string
	Recovered bool
}

func Ok() Outcome {
	return Outcome{Success: true}
}

func Fail(message string) Outcome {
	return Outcome{Success: false, Message: message}
}

// FailSilent marks a failure the user was not told about.
func FailSilent() Outcome {
	return Outcome{Success: false, Recovered: true}
}

func (o Outcome) Failed() bool {
	return !o.Success
}
