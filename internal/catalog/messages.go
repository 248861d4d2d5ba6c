package catalog

import "github.com/lakbayan/tourism-portal/internal/domain"

// op is a mutation verb used to build notification messages.
type op string

const (
	opCreate op = "create"
	opUpdate op = "update"
	opDelete op = "delete"
)

// past maps each op to its past-tense verb for success messages.
var past = map[op]string{
	opCreate: "created",
	opUpdate: "updated",
	opDelete: "deleted",
}

// successMessage builds the per-kind, per-operation success toast,
// e.g. "Water transportation created."
func successMessage(kind domain.Kind, o op) string {
	return capitalize(kind.Singular()) + " " + past[o] + "."
}

// failureMessage builds the per-kind, per-operation failure toast,
// e.g. "Failed to delete restaurant."
func failureMessage(kind domain.Kind, o op) string {
	return "Failed to " + string(o) + " " + kind.Singular() + "."
}

// capitalize upper-cases the first byte; kind nouns are plain ASCII.
func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
