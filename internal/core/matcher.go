package core

import (
	"fmt"
	"reflect"
)

// Matcher defines the interface for flexible argument matching. Compatible
// with gomega.GomegaMatcher via duck typing: any type implementing Match and
// FailureMessage works.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// MatchValue checks whether actual matches expected. If expected implements
// the Matcher interface, its Match method decides; otherwise the two values
// are compared with reflect.DeepEqual. Returns success and a failure message;
// the message is empty on success.
func MatchValue(actual, expected any) (bool, string) {
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}
