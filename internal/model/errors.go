package model

import "fmt"

// InvalidNumberError reports a question whose number is not numeric. Matching
// output is ordered by integer question number, so such records fail fast
// instead of being silently coerced.
type InvalidNumberError struct {
	Number string
	Text   string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("question number %q is not numeric (question: %s)", e.Number, truncate(e.Text, 60))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
