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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/asklund/fyne-rowtable/rowtable"
)

// goExprSource wraps a user predicate in a function the interpreter can
// hand back. The predicate sees three column getters: S (formatted string),
// N (numeric) and B (boolean), each taking an accessor name.
const goExprSource = `package expr

import "strings"

var _ = strings.Contains

func Match(S func(string) string, N func(string) float64, B func(string) bool) bool {
	return %s
}
`

type matchFunc func(func(string) string, func(string) float64, func(string) bool) bool

// GoExpr is a row filter compiled once from a Go boolean expression, for
// example:
//
//	N("age") > 30 && strings.Contains(S("name"), "An")
//
// The standard library is available inside the expression.
type GoExpr struct {
	expr string
	fn   matchFunc
}

// CompileGoExpr builds a GoExpr from an expression string. Compilation
// failures wrap rowtable.ErrInvalidFilter.
func CompileGoExpr(expr string) (*GoExpr, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", rowtable.ErrInvalidFilter)
	}

	var buf bytes.Buffer
	i := interp.New(interp.Options{
		Stdout: &buf,
		Stderr: &buf,
	})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("%w: loading stdlib: %v", rowtable.ErrInvalidFilter, err)
	}

	if _, err := i.Eval(fmt.Sprintf(goExprSource, expr)); err != nil {
		return nil, fmt.Errorf("%w: %v", rowtable.ErrInvalidFilter, err)
	}

	v, err := i.Eval("expr.Match")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rowtable.ErrInvalidFilter, err)
	}
	fn, ok := v.Interface().(func(func(string) string, func(string) float64, func(string) bool) bool)
	if !ok {
		return nil, fmt.Errorf("%w: expression is not a boolean", rowtable.ErrInvalidFilter)
	}

	return &GoExpr{expr: expr, fn: fn}, nil
}

// Evaluate implements the rowtable.Filter interface. Panics raised inside
// the interpreted expression are converted to errors.
func (g *GoExpr) Evaluate(row []rowtable.Value, accessors []string) (pass bool, err error) {
	lookup := func(name string) (rowtable.Value, bool) {
		for i, acc := range accessors {
			if acc == name {
				return row[i], true
			}
		}
		return rowtable.Value{}, false
	}

	s := func(name string) string {
		v, _ := lookup(name)
		return v.Formatted
	}
	n := func(name string) float64 {
		v, ok := lookup(name)
		if !ok || v.IsNull {
			return 0
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(v.Formatted), 64)
		if perr != nil {
			return 0
		}
		return f
	}
	b := func(name string) bool {
		v, ok := lookup(name)
		if !ok {
			return false
		}
		if raw, isBool := v.Raw.(bool); isBool {
			return raw
		}
		return strings.EqualFold(v.Formatted, "true")
	}

	defer func() {
		if r := recover(); r != nil {
			pass = false
			err = fmt.Errorf("%w: %v", rowtable.ErrInvalidFilter, r)
		}
	}()

	return g.fn(s, n, b), nil
}

// Description implements the rowtable.Filter interface.
func (g *GoExpr) Description() string {
	return "expr: " + g.expr
}
