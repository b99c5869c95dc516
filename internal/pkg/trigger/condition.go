package trigger

import (
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

const (
	OperatorAnd Operator = "AND"
	OperatorOr  Operator = "OR"
)

// Operator combines the condition with the previous one.
type Operator string

// Condition of a trigger. Conditions are kept for display, they are not evaluated.
type Condition struct {
	Type       string
	Operator   Operator
	Expression string
	raw        *orderedmap.OrderedMap
}

func (c *Condition) Raw() *orderedmap.OrderedMap {
	return c.raw.Clone()
}

func (c *Condition) String() string {
	out := c.Type
	if c.Expression != "" {
		out += ": " + c.Expression
	}
	return out
}

func describeConditions(conditions []*Condition) string {
	var b strings.Builder
	for i, c := range conditions {
		if i > 0 {
			b.WriteString(" " + string(c.Operator) + " ")
		}
		b.WriteString(c.String())
	}
	return b.String()
}
