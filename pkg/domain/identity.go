package domain

import (
	"reflect"
	"sync/atomic"
)

// Key identifies a state or transition by reference.
//
// Pointers, maps and channels are keyed by address. Other comparable values are
// keyed by value. Values that are neither (funcs, slices, structs holding them)
// receive a fresh key on every call and therefore never compare equal.
type Key struct {
	typ reflect.Type
	ptr uintptr
	val any
	seq uint64
}

var keySeq atomic.Uint64

// KeyOf returns the identity key of v. A nil interface yields the zero Key.
func KeyOf(v any) Key {
	if v == nil {
		return Key{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return Key{}
		}
		return Key{typ: rv.Type(), ptr: rv.Pointer()}
	}
	if rv.Comparable() {
		return Key{typ: rv.Type(), val: v}
	}
	return Key{typ: rv.Type(), seq: keySeq.Add(1)}
}

// Addressable reports whether v carries a stable reference identity: a non-nil
// pointer to a value of non-zero size, a map or a channel. Pointers to zero-size
// values may share an address and are not addressable.
func Addressable(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return !rv.IsNil() && rv.Type().Elem().Size() > 0
	case reflect.Map, reflect.Chan:
		return !rv.IsNil()
	}
	return false
}

// IsZero reports whether k is the key of a nil value.
func (k Key) IsZero() bool {
	return k == Key{}
}

// IsNil reports whether v is nil or an interface holding a nil pointer, map or channel.
func IsNil(v any) bool {
	return KeyOf(v).IsZero()
}
