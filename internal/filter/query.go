// Copyright 2026 Anders Sklund
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// CompOp is a comparison operator in a query expression.
type CompOp int

const (
	OpEqual CompOp = iota
	OpNotEqual
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	OpContains
)

// Expression is a single comparison against one column, or a bare term
// searched across all columns when Accessor is empty.
type Expression struct {
	Accessor string
	Operator CompOp
	Value    string
}

// Query filters rows with a small expression language:
//
//	age >= 30 AND name ~ an
//	city = "Malmö" OR city = Lund
//	smith
//
// Column terms accept either the accessor or the heading, case-insensitive.
// A bare term is a contains-search across every column. Build one with
// ParseQuery.
type Query struct {
	raw         string
	expressions []Expression
	logicOps    []LogicOp // between consecutive expressions
}

// ParseQuery parses a query string against the given columns. An empty or
// blank query returns (nil, nil), meaning no filter. Parse failures and
// unknown column names wrap rowtable.ErrInvalidFilter.
func ParseQuery(queryStr string, columns []rowtable.Column) (*Query, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, nil
	}

	names := make(map[string]string) // lowercased accessor/heading -> accessor
	for _, c := range columns {
		names[strings.ToLower(c.Accessor)] = c.Accessor
		names[strings.ToLower(c.Heading)] = c.Accessor
	}

	q := &Query{raw: strings.TrimSpace(queryStr)}

	parts := splitByLogicOps(queryStr)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty query", rowtable.ErrInvalidFilter)
	}

	for _, part := range parts {
		if part.isOperator {
			if strings.ToUpper(part.text) == "AND" {
				q.logicOps = append(q.logicOps, LogicAND)
			} else {
				q.logicOps = append(q.logicOps, LogicOR)
			}
			continue
		}
		expr, err := parseExpression(part.text, names)
		if err != nil {
			return nil, err
		}
		q.expressions = append(q.expressions, expr)
	}

	if len(q.logicOps) != len(q.expressions)-1 {
		return nil, fmt.Errorf("%w: mismatched expressions and operators", rowtable.ErrInvalidFilter)
	}

	return q, nil
}

type queryPart struct {
	text       string
	isOperator bool
}

// splitByLogicOps splits a query by AND/OR while preserving the operators.
// Operator words only count on word boundaries.
func splitByLogicOps(query string) []queryPart {
	parts := make([]queryPart, 0)
	current := ""
	i := 0

	flush := func() {
		if strings.TrimSpace(current) != "" {
			parts = append(parts, queryPart{text: strings.TrimSpace(current)})
			current = ""
		}
	}

	for i < len(query) {
		if i+3 <= len(query) && strings.ToUpper(query[i:i+3]) == "AND" {
			if (i == 0 || isWhitespace(query[i-1])) && (i+3 >= len(query) || isWhitespace(query[i+3])) {
				flush()
				parts = append(parts, queryPart{text: "AND", isOperator: true})
				i += 3
				continue
			}
		}

		if i+2 <= len(query) && strings.ToUpper(query[i:i+2]) == "OR" {
			if (i == 0 || isWhitespace(query[i-1])) && (i+2 >= len(query) || isWhitespace(query[i+2])) {
				flush()
				parts = append(parts, queryPart{text: "OR", isOperator: true})
				i += 2
				continue
			}
		}

		current += string(query[i])
		i++
	}
	flush()

	return parts
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// parseExpression parses a single expression like "column >= value".
// Expressions without an operator become a contains-search on all columns.
func parseExpression(exprStr string, names map[string]string) (Expression, error) {
	exprStr = strings.TrimSpace(exprStr)

	// Operator symbols ordered so ">=" matches before "=".
	operators := []struct {
		op     CompOp
		symbol string
	}{
		{OpGreaterEqual, ">="},
		{OpLessEqual, "<="},
		{OpNotEqual, "!="},
		{OpEqual, "="},
		{OpGreater, ">"},
		{OpLess, "<"},
		{OpContains, "~"},
	}

	for _, opInfo := range operators {
		idx := strings.Index(exprStr, opInfo.symbol)
		if idx <= 0 {
			continue
		}

		columnName := strings.TrimSpace(exprStr[:idx])
		value := strings.TrimSpace(exprStr[idx+len(opInfo.symbol):])
		value = strings.Trim(value, "\"'")

		accessor, exists := names[strings.ToLower(columnName)]
		if !exists {
			return Expression{}, fmt.Errorf("%w: unknown column %q", rowtable.ErrInvalidFilter, columnName)
		}

		return Expression{Accessor: accessor, Operator: opInfo.op, Value: value}, nil
	}

	return Expression{Operator: OpContains, Value: exprStr}, nil
}

// Evaluate implements the rowtable.Filter interface. Logical operators are
// applied left to right without precedence.
func (q *Query) Evaluate(row []rowtable.Value, accessors []string) (bool, error) {
	if q == nil || len(q.expressions) == 0 {
		return true, nil
	}

	result := evaluateExpression(q.expressions[0], row, accessors)
	for i := 0; i < len(q.logicOps); i++ {
		next := evaluateExpression(q.expressions[i+1], row, accessors)
		switch q.logicOps[i] {
		case LogicAND:
			result = result && next
		case LogicOR:
			result = result || next
		}
	}

	return result, nil
}

// Description implements the rowtable.Filter interface.
func (q *Query) Description() string {
	return q.raw
}

func evaluateExpression(expr Expression, row []rowtable.Value, accessors []string) bool {
	// Bare term: contains-search across every column.
	if expr.Accessor == "" && expr.Operator == OpContains {
		term := strings.ToLower(expr.Value)
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell.Formatted), term) {
				return true
			}
		}
		return false
	}

	colIdx := -1
	for i, acc := range accessors {
		if acc == expr.Accessor {
			colIdx = i
			break
		}
	}
	if colIdx < 0 || colIdx >= len(row) {
		return false
	}

	cellValue := row[colIdx].Formatted

	switch expr.Operator {
	case OpEqual:
		return strings.EqualFold(cellValue, expr.Value)
	case OpNotEqual:
		return !strings.EqualFold(cellValue, expr.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(cellValue), strings.ToLower(expr.Value))
	case OpGreater, OpLess, OpGreaterEqual, OpLessEqual:
		return compareNumeric(cellValue, expr.Value, expr.Operator)
	}

	return false
}

// compareNumeric compares two values numerically, falling back to
// case-insensitive string order when either side does not parse.
func compareNumeric(cellValue, compareValue string, op CompOp) bool {
	cell, err1 := strconv.ParseFloat(strings.TrimSpace(cellValue), 64)
	compare, err2 := strconv.ParseFloat(strings.TrimSpace(compareValue), 64)

	if err1 != nil || err2 != nil {
		return compareString(cellValue, compareValue, op)
	}

	switch op {
	case OpGreater:
		return cell > compare
	case OpLess:
		return cell < compare
	case OpGreaterEqual:
		return cell >= compare
	case OpLessEqual:
		return cell <= compare
	}

	return false
}

func compareString(cellValue, compareValue string, op CompOp) bool {
	cmp := strings.Compare(strings.ToLower(cellValue), strings.ToLower(compareValue))

	switch op {
	case OpGreater:
		return cmp > 0
	case OpLess:
		return cmp < 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLessEqual:
		return cmp <= 0
	}

	return false
}
