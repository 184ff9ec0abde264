package kernel

// Entity associates a payload with an identity. Structs embed it to get an ID
// accessor and identity-based equality.
type Entity struct {
	id UUID
}

// NewEntity returns an Entity carrying id.
func NewEntity(id UUID) Entity {
	return Entity{id: id}
}

// ID returns the identity of the entity.
func (e Entity) ID() UUID {
	return e.id
}

// IsEqual reports whether both entities share the same identity. Callers
// compare entities of the same concrete type; the Go type system enforces the
// "same kind" half of the equality rule.
func (e Entity) IsEqual(other Entity) bool {
	return e.id.IsEqual(other.id)
}
