package component

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	kindNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// String names the component's Go type, for error messages and debug dumps.
func (k ComponentKind[T]) String() string {
	if name, ok := kindNames.Load(k.id); ok {
		return name.(string)
	}
	return "invalid"
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	kindNames       sync.Map
)
