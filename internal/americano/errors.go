package americano

import "fmt"

// ConfigError reports a caller-correctable configuration problem: empty
// courts or participants, a participant count that does not divide into
// teams, malformed predefined teams, and so on. Generation fails before any
// partial schedule is produced. Match with errors.As.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid scheduling configuration: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}
