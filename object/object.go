// Package object holds client-side snapshots of repository objects and the
// factory that builds them from raw repository data.
package object

import (
	"time"

	"github.com/krisalay/object-cache/property"
)

// Well-known property ids.
const (
	PropObjectID     = "cmis:objectId"
	PropObjectTypeID = "cmis:objectTypeId"
	PropBaseTypeID   = "cmis:baseTypeId"
	PropName         = "cmis:name"
	PropPath         = "cmis:path"
)

// BaseType is the root type an object derives from.
type BaseType string

const (
	Document     BaseType = "cmis:document"
	Folder       BaseType = "cmis:folder"
	Relationship BaseType = "cmis:relationship"
	Policy       BaseType = "cmis:policy"
)

// Valid reports whether b is one of the four base types.
func (b BaseType) Valid() bool {
	switch b {
	case Document, Folder, Relationship, Policy:
		return true
	}
	return false
}

// Data is an object as the repository returned it, before conversion.
type Data struct {
	BaseType   BaseType
	Properties map[string]any
}

// Object is an immutable snapshot of one repository object as fetched under
// one operation context. It is shared by reference through the cache; do not
// modify the values returned by Properties.
type Object struct {
	id         string
	baseType   BaseType
	typeID     string
	cacheKey   string
	fetchedAt  time.Time
	properties map[string]property.Data
}

// ID returns the cmis:objectId value.
func (o *Object) ID() string { return o.id }

// BaseType returns the root type the object derives from.
func (o *Object) BaseType() BaseType { return o.baseType }

// TypeID returns the cmis:objectTypeId value.
func (o *Object) TypeID() string { return o.typeID }

// CacheKey returns the key of the operation context the object was fetched
// under. Two snapshots of one id with different keys hold different data.
func (o *Object) CacheKey() string { return o.cacheKey }

// FetchedAt is when the factory built the snapshot.
func (o *Object) FetchedAt() time.Time { return o.fetchedAt }

// Name returns cmis:name, or "" if it was not fetched.
func (o *Object) Name() string { return o.stringProperty(PropName) }

// Path returns cmis:path, which only folders carry.
func (o *Object) Path() string { return o.stringProperty(PropPath) }

// IsFolder reports whether the object is a folder.
func (o *Object) IsFolder() bool { return o.baseType == Folder }

// PropertyCount returns how many properties the snapshot holds.
func (o *Object) PropertyCount() int { return len(o.properties) }

// Property returns one property by id.
func (o *Object) Property(id string) (property.Data, bool) {
	p, ok := o.properties[id]
	return p, ok
}

// Properties returns the property map backing the snapshot.
func (o *Object) Properties() map[string]property.Data {
	return o.properties
}

func (o *Object) stringProperty(id string) string {
	p, ok := o.properties[id]
	if !ok {
		return ""
	}
	s, _ := p.FirstString()
	return s
}
