package coproc

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// Session is a native Engine keeping its variables in memory.
type Session struct {
	mu   sync.Mutex
	vars map[string]interface{}
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{vars: make(map[string]interface{})}
}

// Assign stores a copy of value under name.
func (s *Session) Assign(name string, value interface{}) error {
	if name == "" {
		return fmt.Errorf("coproc: variable name must not be empty")
	}

	v, err := normalize(value)

	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.vars[name] = v

	return nil
}

// Eval evaluates one or more statements and returns the value of the last one.
func (s *Session) Eval(ctx context.Context, expr string) (result Result, err error) {
	statements, err := parse(expr)

	if err != nil {
		return result, err
	}

	if len(statements) == 0 {
		return result, ErrNoResult
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range statements {
		if err = ctx.Err(); err != nil {
			return Result{}, err
		}

		v, err := s.eval(ctx, st.expr)

		if err != nil {
			log.Debugf("coproc: %s", err)
			return Result{}, err
		}

		if st.target != "" {
			s.vars[st.target] = v
		}

		result = Result{value: v}
	}

	return result, nil
}

// Clear removes all variables.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vars = make(map[string]interface{})
}

// Len returns the number of variables.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.vars)
}

func (s *Session) eval(ctx context.Context, n node) (interface{}, error) {
	switch x := n.(type) {
	case numberNode:
		return float64(x), nil
	case stringNode:
		return string(x), nil
	case nameNode:
		if v, ok := s.vars[string(x)]; ok {
			return v, nil
		}

		return nil, fmt.Errorf("coproc: %w %s", ErrUnknownName, x)
	case fieldNode:
		v, err := s.eval(ctx, x.x)

		if err != nil {
			return nil, err
		}

		l, err := toList(v)

		if err != nil {
			return nil, err
		}

		if f, ok := l[x.name]; ok {
			return f, nil
		}

		return nil, fmt.Errorf("coproc: %w %s", ErrUnknownName, x.name)
	case negNode:
		v, err := s.eval(ctx, x.x)

		if err != nil {
			return nil, err
		}

		return arith("-", 0.0, v)
	case binaryNode:
		a, err := s.eval(ctx, x.x)

		if err != nil {
			return nil, err
		}

		b, err := s.eval(ctx, x.y)

		if err != nil {
			return nil, err
		}

		return arith(x.op, a, b)
	case callNode:
		return s.call(ctx, x)
	default:
		return nil, fmt.Errorf("coproc: cannot evaluate %T", n)
	}
}

func (s *Session) call(ctx context.Context, c callNode) (interface{}, error) {
	fn, ok := natives[c.fn]

	if !ok {
		return nil, fmt.Errorf("coproc: could not find function %q", c.fn)
	}

	in := args{fn: c.fn, named: make(map[string]interface{})}

	for _, a := range c.args {
		if name, ok := a.value.(nameNode); ok && quoting[c.fn] {
			in.positional = append(in.positional, string(name))
			continue
		}

		v, err := s.eval(ctx, a.value)

		if err != nil {
			return nil, err
		}

		if a.name == "" {
			in.positional = append(in.positional, v)
		} else {
			in.named[a.name] = v
		}
	}

	return fn(ctx, in)
}

// arith applies an element-wise operator to scalars and vectors.
func arith(op string, a, b interface{}) (interface{}, error) {
	x, err := toVector(a)

	if err != nil {
		return nil, err
	}

	y, err := toVector(b)

	if err != nil {
		return nil, err
	}

	n := len(x)

	if len(y) > n {
		n = len(y)
	}

	if len(x) == 0 || len(y) == 0 || n%len(x) != 0 || n%len(y) != 0 {
		return nil, fmt.Errorf("coproc: operands of %s have incompatible lengths %d and %d", op, len(x), len(y))
	}

	result := make([]float64, n)

	for i := range result {
		u, v := x[i%len(x)], y[i%len(y)]

		switch op {
		case "+":
			result[i] = u + v
		case "-":
			result[i] = u - v
		case "*":
			result[i] = u * v
		case "/":
			result[i] = u / v
		case "^":
			result[i] = math.Pow(u, v)
		default:
			return nil, fmt.Errorf("coproc: unknown operator %s", op)
		}
	}

	if n == 1 {
		return result[0], nil
	}

	return result, nil
}
