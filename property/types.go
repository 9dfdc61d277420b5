// Package property converts loosely typed property maps into the closed set of
// typed property values a repository understands.
package property

import "fmt"

// Type is the declared value kind of a property.
type Type int

const (
	TypeString Type = iota + 1
	TypeID
	TypeInteger
	TypeBoolean
	TypeDateTime
	TypeDecimal
	TypeURI
	TypeHTML
)

var typeNames = map[Type]string{
	TypeString:   "string",
	TypeID:       "id",
	TypeInteger:  "integer",
	TypeBoolean:  "boolean",
	TypeDateTime: "datetime",
	TypeDecimal:  "decimal",
	TypeURI:      "uri",
	TypeHTML:     "html",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Cardinality says whether a property holds one value or a list.
type Cardinality int

const (
	Single Cardinality = iota + 1
	Multi
)

// Updatability says when a property may be written.
type Updatability int

const (
	ReadOnly Updatability = iota + 1
	ReadWrite
	WhenCheckedOut
	OnCreate
)

// Definition describes one property of an object type.
type Definition struct {
	ID           string
	Type         Type
	Cardinality  Cardinality
	Updatability Updatability
}

// TypeDefinition is the set of property definitions of one object type.
type TypeDefinition struct {
	ID          string
	Definitions map[string]Definition
}

// Definition looks up a property definition by id.
func (td *TypeDefinition) Definition(id string) (Definition, bool) {
	if td == nil {
		return Definition{}, false
	}
	d, ok := td.Definitions[id]
	return d, ok
}

// NewTypeDefinition indexes defs by id.
func NewTypeDefinition(id string, defs ...Definition) *TypeDefinition {
	m := make(map[string]Definition, len(defs))
	for _, d := range defs {
		m[d.ID] = d
	}
	return &TypeDefinition{ID: id, Definitions: m}
}
