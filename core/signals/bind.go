package signals

import (
	"context"
	"fmt"
	"maps"
)

// ParamKind classifies a parameter declared by a bound receiver.
type ParamKind uint8

const (
	// PositionalOrKeyword parameters are required and passed in declaration order.
	PositionalOrKeyword ParamKind = iota
	// KeywordOnly parameters are required and passed by name.
	KeywordOnly
	// VarKeyword absorbs every payload entry not consumed by a named parameter.
	VarKeyword
	// PositionalOnlyKind parameters cannot be bound from a keyword payload.
	PositionalOnlyKind
	// VarPositionalKind parameters cannot be bound from a keyword payload.
	VarPositionalKind
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOrKeyword:
		return "positional-or-keyword"
	case KeywordOnly:
		return "keyword-only"
	case VarKeyword:
		return "var-keyword"
	case PositionalOnlyKind:
		return "positional-only"
	case VarPositionalKind:
		return "var-positional"
	default:
		return fmt.Sprintf("param-kind(%d)", uint8(k))
	}
}

// Param declares one parameter a receiver consumes from the payload.
type Param struct {
	Name string
	Kind ParamKind
}

// Arg declares a required parameter passed positionally.
func Arg(name string) Param { return Param{Name: name, Kind: PositionalOrKeyword} }

// KwArg declares a required parameter passed by name.
func KwArg(name string) Param { return Param{Name: name, Kind: KeywordOnly} }

// Rest declares a catch-all parameter receiving every unconsumed entry.
func Rest(name string) Param { return Param{Name: name, Kind: VarKeyword} }

// PositionalOnly declares a positional-only parameter. Bind rejects it.
func PositionalOnly(name string) Param { return Param{Name: name, Kind: PositionalOnlyKind} }

// VarPositional declares a variadic positional parameter. Bind rejects it.
func VarPositional(name string) Param { return Param{Name: name, Kind: VarPositionalKind} }

// Args holds the values bound for one call of a receiver.
type Args struct {
	names  []string
	values []any
	kwargs Payload
	rest   Payload
}

// Len returns the number of positional values.
func (a Args) Len() int { return len(a.values) }

// At returns the i-th positional value in declaration order.
func (a Args) At(i int) any { return a.values[i] }

// Positional returns a copy of the positional values in declaration order.
func (a Args) Positional() []any {
	out := make([]any, len(a.values))
	copy(out, a.values)
	return out
}

// Kwargs returns a copy of the keyword values, absorbed entries included.
func (a Args) Kwargs() Payload {
	return maps.Clone(a.kwargs)
}

// Rest returns the entries absorbed by the catch-all parameter.
// It is nil when the receiver declares no catch-all.
func (a Args) Rest() Payload {
	return maps.Clone(a.rest)
}

// Lookup finds a bound value by parameter or keyword name.
func (a Args) Lookup(name string) (any, bool) {
	for i, n := range a.names {
		if n == name {
			return a.values[i], true
		}
	}
	v, ok := a.kwargs[name]
	return v, ok
}

// Get returns a bound value by name, or nil.
func (a Args) Get(name string) any {
	v, _ := a.Lookup(name)
	return v
}

// String returns a bound value as a string, or "" when absent or of another type.
func (a Args) String(name string) string {
	s, _ := a.Get(name).(string)
	return s
}

// ArgsFunc is the function shape wrapped by Bind.
type ArgsFunc func(ctx context.Context, args Args) error

// boundReceiver binds payload entries to a declared parameter list.
// The parameter list is validated once, in Bind.
type boundReceiver struct {
	name   string
	params []Param
	fn     ArgsFunc
}

// Bind builds a Receiver that consumes only the declared parameters.
//
// Required parameters (Arg, KwArg) missing from the payload fail the call
// with a *MissingArgumentError. Entries that no parameter names are dropped
// unless a Rest parameter absorbs them. PositionalOnly and VarPositional
// parameters, empty or duplicate names, more than one Rest or a Rest that is
// not last are rejected with ErrUnsupportedSignature.
//
// Example:
//
//	r, err := signals.Bind(func(ctx context.Context, args signals.Args) error {
//	    fmt.Println(args.Get("sender"), args.String("kwarg1"), args.Rest())
//	    return nil
//	}, signals.Arg("sender"), signals.Arg("kwarg1"), signals.Rest("kwargs"))
func Bind(fn ArgsFunc, params ...Param) (Receiver, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: bind function is nil", ErrInvalidArgument)
	}
	name := funcName(fn)
	if err := validateParams(name, params); err != nil {
		return nil, err
	}
	return &boundReceiver{
		name:   name,
		params: append([]Param(nil), params...),
		fn:     fn,
	}, nil
}

// MustBind is like Bind but panics on an invalid parameter list.
func MustBind(fn ArgsFunc, params ...Param) Receiver {
	r, err := Bind(fn, params...)
	if err != nil {
		panic(err)
	}
	return r
}

func validateParams(receiver string, params []Param) error {
	seen := make(map[string]struct{}, len(params))
	for i, p := range params {
		switch p.Kind {
		case PositionalOrKeyword, KeywordOnly:
		case VarKeyword:
			if i != len(params)-1 {
				return fmt.Errorf("%w: %s: catch-all parameter %q must be last", ErrUnsupportedSignature, receiver, p.Name)
			}
		default:
			return fmt.Errorf("%w: %s: %s parameter %q is not supported, use keyword parameters instead",
				ErrUnsupportedSignature, receiver, p.Kind, p.Name)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: %s: parameter %d has no name", ErrUnsupportedSignature, receiver, i)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate parameter %q", ErrUnsupportedSignature, receiver, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

func (r *boundReceiver) Name() string { return r.name }

// Params returns the declared parameter list.
func (r *boundReceiver) Params() []Param {
	return append([]Param(nil), r.params...)
}

func (r *boundReceiver) Receive(ctx context.Context, payload Payload) error {
	remaining := payload.Clone()
	args := Args{kwargs: make(Payload)}

	for _, p := range r.params {
		switch p.Kind {
		case PositionalOrKeyword:
			v, ok := remaining[p.Name]
			if !ok {
				return &MissingArgumentError{Receiver: r.name, Param: p.Name}
			}
			delete(remaining, p.Name)
			args.names = append(args.names, p.Name)
			args.values = append(args.values, v)
		case KeywordOnly:
			v, ok := remaining[p.Name]
			if !ok {
				return &MissingArgumentError{Receiver: r.name, Param: p.Name}
			}
			delete(remaining, p.Name)
			args.kwargs[p.Name] = v
		case VarKeyword:
			args.rest = remaining
			maps.Copy(args.kwargs, remaining)
		}
	}

	return r.fn(ctx, args)
}
