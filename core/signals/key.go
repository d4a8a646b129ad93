package signals

import (
	"fmt"
	"reflect"
)

// Kind tags the variant held by a Key.
type Kind uint8

const (
	// KindNone is the zero Key: no value was supplied.
	KindNone Kind = iota
	// KindConcrete holds a caller supplied value.
	KindConcrete
	// KindWildcard matches any concrete value in its slot.
	KindWildcard
	// KindAnonymous marks a signal sent without a sender.
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConcrete:
		return "concrete"
	case KindWildcard:
		return "any"
	case KindAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Key identifies a signal, a sender or a channel. It is comparable and is
// used directly as a registry map key.
type Key struct {
	kind  Kind
	value any
}

var (
	// Wildcard matches every concrete signal, sender or channel.
	Wildcard = Key{kind: KindWildcard}

	// Anonymous is the sender of signals sent without one. At resolution time
	// it behaves like Wildcard.
	Anonymous = Key{kind: KindAnonymous}
)

// KeyOf lifts a plain value into a Key. A Key is returned unchanged and nil
// becomes the None key.
//
// Example:
//
//	signals.KeyOf("user created") // concrete
//	signals.KeyOf(signals.Wildcard) // wildcard
//	signals.KeyOf(nil)              // none
func KeyOf(v any) Key {
	switch t := v.(type) {
	case nil:
		return Key{}
	case Key:
		return t
	case *Key:
		if t == nil {
			return Key{}
		}
		return *t
	default:
		return Key{kind: KindConcrete, value: v}
	}
}

// Kind reports which variant the key holds.
func (k Key) Kind() Kind { return k.kind }

// Value returns the concrete value, or nil for sentinels.
func (k Key) Value() any { return k.value }

// IsNone reports whether no value was supplied.
func (k Key) IsNone() bool { return k.kind == KindNone }

// IsWildcard reports whether k is Wildcard.
func (k Key) IsWildcard() bool { return k.kind == KindWildcard }

// IsAnonymous reports whether k is Anonymous.
func (k Key) IsAnonymous() bool { return k.kind == KindAnonymous }

// IsConcrete reports whether k holds a caller supplied value.
func (k Key) IsConcrete() bool { return k.kind == KindConcrete }

// String renders sentinels as <any>, <anonymous> and <none>.
func (k Key) String() string {
	switch k.kind {
	case KindConcrete:
		return fmt.Sprint(k.value)
	default:
		return "<" + k.kind.String() + ">"
	}
}

// external returns the form forwarded to receivers in the payload:
// the raw value for concrete keys, the key itself for sentinels.
func (k Key) external() any {
	if k.kind == KindConcrete {
		return k.value
	}
	return k
}

// validate rejects concrete values that would panic as map keys.
func (k Key) validate() error {
	if k.kind != KindConcrete {
		return nil
	}
	if !reflect.ValueOf(k.value).Comparable() {
		return fmt.Errorf("%w: key of type %T is not comparable", ErrInvalidArgument, k.value)
	}
	return nil
}
