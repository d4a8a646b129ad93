package signals

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode"
)

// tagName is the struct tag read by BindStruct.
const tagName = "signal"

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
	payloadType = reflect.TypeFor[Payload]()
)

type fieldPlan struct {
	index    int
	name     string
	optional bool
}

// structPlan is the binding of payload keys to struct fields, computed once.
type structPlan struct {
	typ    reflect.Type
	ptr    bool
	fields []fieldPlan
	rest   int // index of the catch-all field, -1 if none
}

// structReceiver decodes the payload into a fresh T for every call.
type structReceiver struct {
	name string
	plan *structPlan
	call func(ctx context.Context, v reflect.Value) error
}

// BindStruct builds a Receiver that decodes the payload into a struct of type T.
//
// Exported fields are bound to payload keys named by the `signal` tag, or to
// the snake_case form of the field name when the tag is absent. A tag of "-"
// skips the field, the ",optional" flag allows the key to be absent and the
// ",rest" flag on a map[string]any field absorbs every unconsumed entry.
// Required keys missing from the payload fail the call with a
// *MissingArgumentError; values of the wrong type with ErrArgumentType.
//
// Example:
//
//	type KeyArgs struct {
//	    Sender any            `signal:"sender"`
//	    Kwarg1 string         `signal:"kwarg1"`
//	    Extra  map[string]any `signal:",rest"`
//	}
//
//	r, err := signals.BindStruct(func(ctx context.Context, in KeyArgs) error {
//	    return nil
//	})
func BindStruct[T any](fn func(context.Context, T) error) (Receiver, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: bind function is nil", ErrInvalidArgument)
	}
	name := funcName(fn)
	plan, err := planStruct(name, reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &structReceiver{
		name: name,
		plan: plan,
		call: func(ctx context.Context, v reflect.Value) error {
			return fn(ctx, v.Interface().(T))
		},
	}, nil
}

// MustBindStruct is like BindStruct but panics if T cannot be bound.
func MustBindStruct[T any](fn func(context.Context, T) error) Receiver {
	r, err := BindStruct(fn)
	if err != nil {
		panic(err)
	}
	return r
}

// bindMethod adapts a reflected func(context.Context, T) error, where T is a
// struct or a pointer to one, or func(context.Context, Payload) error.
func bindMethod(name string, m reflect.Value) (Receiver, error) {
	t := m.Type()
	if t.NumIn() != 2 || t.NumOut() != 1 || t.In(0) != contextType || t.Out(0) != errorType {
		return nil, fmt.Errorf("%w: %s: want func(context.Context, T) error, got %s", ErrUnsupportedSignature, name, t)
	}

	if t.In(1) == payloadType {
		fn := m.Interface().(func(context.Context, Payload) error)
		return Named(name, ReceiverFunc(fn)), nil
	}

	plan, err := planStruct(name, t.In(1))
	if err != nil {
		return nil, err
	}
	return &structReceiver{
		name: name,
		plan: plan,
		call: func(ctx context.Context, v reflect.Value) error {
			out := m.Call([]reflect.Value{reflect.ValueOf(&ctx).Elem(), v})
			if err, _ := out[0].Interface().(error); err != nil {
				return err
			}
			return nil
		},
	}, nil
}

func planStruct(receiver string, t reflect.Type) (*structPlan, error) {
	plan := &structPlan{rest: -1}
	if t.Kind() == reflect.Pointer {
		plan.ptr = true
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s: payload type %s is not a struct", ErrUnsupportedSignature, receiver, t)
	}
	plan.typ = t

	seen := make(map[string]struct{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		tag, hasTag := f.Tag.Lookup(tagName)
		if tag == "-" {
			continue
		}

		name, flags, _ := strings.Cut(tag, ",")
		if !hasTag || name == "" {
			name = snakeCase(f.Name)
		}

		switch flags {
		case "rest":
			if plan.rest >= 0 {
				return nil, fmt.Errorf("%w: %s: more than one catch-all field", ErrUnsupportedSignature, receiver)
			}
			if !payloadType.ConvertibleTo(f.Type) || f.Type.Kind() != reflect.Map {
				return nil, fmt.Errorf("%w: %s: catch-all field %s must be map[string]any", ErrUnsupportedSignature, receiver, f.Name)
			}
			plan.rest = i
			continue
		case "", "optional":
		default:
			return nil, fmt.Errorf("%w: %s: unknown tag option %q on field %s", ErrUnsupportedSignature, receiver, flags, f.Name)
		}

		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate parameter %q", ErrUnsupportedSignature, receiver, name)
		}
		seen[name] = struct{}{}
		plan.fields = append(plan.fields, fieldPlan{index: i, name: name, optional: flags == "optional"})
	}

	return plan, nil
}

func (r *structReceiver) Name() string { return r.name }

func (r *structReceiver) Receive(ctx context.Context, payload Payload) error {
	ptr := reflect.New(r.plan.typ)
	dst := ptr.Elem()

	var consumed map[string]struct{}
	if r.plan.rest >= 0 {
		consumed = make(map[string]struct{}, len(r.plan.fields))
	}

	for _, f := range r.plan.fields {
		v, ok := payload[f.name]
		if !ok {
			if f.optional {
				continue
			}
			return &MissingArgumentError{Receiver: r.name, Param: f.name}
		}
		if consumed != nil {
			consumed[f.name] = struct{}{}
		}
		if err := assign(dst.Field(f.index), v); err != nil {
			return fmt.Errorf("%w: receiver %q argument %q: %v", ErrArgumentType, r.name, f.name, err)
		}
	}

	if r.plan.rest >= 0 {
		rest := make(Payload, len(payload))
		for k, v := range payload {
			if _, ok := consumed[k]; !ok {
				rest[k] = v
			}
		}
		field := dst.Field(r.plan.rest)
		field.Set(reflect.ValueOf(rest).Convert(field.Type()))
	}

	if r.plan.ptr {
		return r.call(ctx, ptr)
	}
	return r.call(ctx, dst)
}

// assign stores v into dst, converting between numeric kinds.
func assign(dst reflect.Value, v any) error {
	if v == nil {
		dst.SetZero()
		return nil
	}
	src := reflect.ValueOf(v)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if isNumeric(src.Kind()) && isNumeric(dst.Kind()) {
		if !fitsExactly(src, dst.Type()) {
			return fmt.Errorf("%v does not fit in %s", v, dst.Type())
		}
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot use %T as %s", v, dst.Type())
}

// fitsExactly reports whether converting the numeric src to t keeps its value:
// no overflow, no sign change and no dropped fraction.
func fitsExactly(src reflect.Value, t reflect.Type) bool {
	dst := reflect.New(t).Elem()
	switch {
	case src.CanInt():
		n := src.Int()
		switch {
		case dst.CanInt():
			return !dst.OverflowInt(n)
		case dst.CanUint():
			return n >= 0 && !dst.OverflowUint(uint64(n))
		default:
			return !dst.OverflowFloat(float64(n)) && int64(float64(n)) == n
		}
	case src.CanUint():
		n := src.Uint()
		switch {
		case dst.CanInt():
			return n <= math.MaxInt64 && !dst.OverflowInt(int64(n))
		case dst.CanUint():
			return !dst.OverflowUint(n)
		default:
			return !dst.OverflowFloat(float64(n)) && uint64(float64(n)) == n
		}
	default:
		f := src.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dst.CanFloat()
		}
		switch {
		case dst.CanInt():
			return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 && !dst.OverflowInt(int64(f))
		case dst.CanUint():
			return f == math.Trunc(f) && f >= 0 && f < math.MaxUint64 && !dst.OverflowUint(uint64(f))
		default:
			return !dst.OverflowFloat(f)
		}
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// snakeCase converts a Go identifier to snake_case: UserID -> user_id.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
