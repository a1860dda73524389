package planner

import "errors"

// Failure classes for model output. Both indicate a provider-contract
// breach, not a user input error; callers surface them as internal errors.
var (
	// ErrInvalidPlanFormat means the response was not parseable JSON at
	// all. Fatal for the attempt, no partial recovery.
	ErrInvalidPlanFormat = errors.New("model output is not valid JSON")

	// ErrSchemaViolation means the JSON parsed but broke the plan contract:
	// a structural schema failure or a cross-field invariant. The validator
	// rejects rather than repairs, so unsafe programming choices (like a
	// missing injury substitution) can never slip through silently.
	ErrSchemaViolation = errors.New("model output violates the plan contract")
)
