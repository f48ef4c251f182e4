package ecs

import "strconv"

// Entity is a generational handle. The low 32 bits index the world's slot
// table and the high 32 bits count how often that slot has been reused, so a
// handle kept after DestroyEntity no longer resolves. The zero Entity is
// never issued.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }
func (e Entity) generation() generation { return generation(uint32(uint64(e) >> entityIDBits)) }

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether e could have been issued by a world. It says nothing
// about whether the entity is still alive; use IsAlive for that.
func (e Entity) Valid() bool {
	return e != 0
}
