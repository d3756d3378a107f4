package filter

import "taskgrid-cli/internal/model"

// Operator names are stored in predicates and presets, so they are part of
// the persisted format and must stay stable.
const (
	OpContains    = "contains"
	OpEquals      = "equals"
	OpStartsWith  = "startsWith"
	OpEndsWith    = "endsWith"
	OpGreaterThan = "greaterThan"
	OpLessThan    = "lessThan"
	OpBetween     = "between"
	OpBefore      = "before"
	OpAfter       = "after"
	OpThisWeek    = "thisWeek"
	OpThisMonth   = "thisMonth"
	OpOverdue     = "overdue"
	OpInList      = "inList"
	OpNotInList   = "notInList"
	OpIsValid     = "isValid"
	OpIsEmpty     = "isEmpty"
	OpIsNotEmpty  = "isNotEmpty"
)

var textOperators = []string{OpContains, OpEquals, OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty}

// OperatorsForType returns the operator set a column of the given type
// accepts, in presentation order.
func OperatorsForType(t model.ColumnType) []string {
	switch t {
	case model.TypeNumber:
		return []string{OpEquals, OpGreaterThan, OpLessThan, OpBetween, OpIsEmpty, OpIsNotEmpty}
	case model.TypeDate:
		return []string{OpEquals, OpBefore, OpAfter, OpBetween, OpThisWeek, OpThisMonth, OpOverdue, OpIsEmpty, OpIsNotEmpty}
	case model.TypeSelect:
		return []string{OpEquals, OpInList, OpNotInList, OpIsEmpty, OpIsNotEmpty}
	case model.TypeEmail, model.TypeURL:
		return []string{OpContains, OpEquals, OpStartsWith, OpEndsWith, OpIsValid, OpIsEmpty, OpIsNotEmpty}
	default:
		return textOperators
	}
}

// ValidOperator reports whether op belongs to the operator set of t.
func ValidOperator(t model.ColumnType, op string) bool {
	for _, o := range OperatorsForType(t) {
		if o == op {
			return true
		}
	}
	return false
}

// RequiresValue reports whether op needs an operand. Operand-free operators
// carry an empty value that evaluation ignores.
func RequiresValue(op string) bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty, OpThisWeek, OpThisMonth, OpOverdue, OpIsValid:
		return false
	}
	return true
}

// RequiresSecondValue reports whether op needs a second operand.
func RequiresSecondValue(op string) bool {
	return op == OpBetween
}
