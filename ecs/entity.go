package ecs

import "fmt"

// Entity packs a slot id in the low 32 bits and a generation in the high 32
// bits. The zero Entity is never alive.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats the handle as slot/generation, e.g. "e4/1".
func (e Entity) String() string {
	return fmt.Sprintf("e%d/%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
