package ast

import "github.com/go-gl/mathgl/mgl32"

// Entity is a point or brush entity. Point entities carry an origin; brush
// entities carry solid children instead.
type Entity struct {
	Base

	// ID is the entity's numeric id from the "id" key.
	ID int

	// ClassName is the entity class, such as "light" or "func_detail".
	ClassName string

	// Origin is the entity's position for point entities.
	Origin mgl32.Vec3

	// Angles is the entity's orientation as pitch/yaw/roll degrees.
	Angles mgl32.Vec3
}

func (e *Entity) Parse(key, value string) {
	e.Base.Parse(key, value)
	switch key {
	case "id":
		e.ID = atoi(value)
	case "classname":
		e.ClassName = value
	case "origin":
		e.Origin = vec3(value)
	case "angles":
		e.Angles = vec3(value)
	}
}

// Solids returns the entity's brush solids in source order. Point entities
// return nil.
func (e *Entity) Solids() []*Solid {
	return collectSolids(e)
}
