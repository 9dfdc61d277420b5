package object

import (
	"errors"
	"fmt"
	"time"

	"github.com/krisalay/object-cache/property"
)

type constError string

func (e constError) Error() string { return string(e) }

var (
	ErrNilData             = constError("object data must not be nil")
	ErrUnsupportedBaseType = constError("unsupported base type")
	ErrMissingObjectID     = constError("object data has no object id")
	ErrMissingTypeID       = constError("object data has no object type id")
	ErrUnknownType         = constError("unknown object type")
)

// TypeResolver looks up the property definitions of an object type.
type TypeResolver interface {
	TypeDefinition(typeID string) (*property.TypeDefinition, bool)
}

// TypeRegistry is a fixed TypeResolver.
type TypeRegistry map[string]*property.TypeDefinition

// TypeDefinition implements TypeResolver.
func (r TypeRegistry) TypeDefinition(typeID string) (*property.TypeDefinition, bool) {
	td, ok := r[typeID]
	return td, ok
}

// Factory builds Objects from repository Data.
type Factory struct {
	// Types resolves object types. Nil means DefaultTypes.
	Types TypeResolver

	// Now stamps FetchedAt. Defaults to time.Now.
	Now func() time.Time
}

// NewFactory returns a Factory resolving types through types.
func NewFactory(types TypeResolver) *Factory {
	return &Factory{Types: types, Now: time.Now}
}

// ConvertObject checks data and converts its properties against the object's type.
func (f *Factory) ConvertObject(data *Data, oc OperationContext) (*Object, error) {
	if data == nil {
		return nil, ErrNilData
	}
	if !data.BaseType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBaseType, data.BaseType)
	}

	typeID, _ := data.Properties[PropObjectTypeID].(string)
	if typeID == "" {
		return nil, ErrMissingTypeID
	}
	td, ok := f.types().TypeDefinition(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeID)
	}

	props, err := property.Convert(data.Properties, td)
	if err != nil {
		return nil, fmt.Errorf("converting properties of %q: %w", typeID, err)
	}

	obj := &Object{
		baseType:   data.BaseType,
		typeID:     typeID,
		cacheKey:   oc.CacheKey(),
		fetchedAt:  f.now(),
		properties: make(map[string]property.Data, len(props)),
	}
	for _, p := range props {
		obj.properties[p.ID] = p
	}

	id, ok := obj.properties[PropObjectID]
	if ok {
		obj.id, _ = id.FirstString()
	}
	if obj.id == "" {
		return nil, ErrMissingObjectID
	}
	return obj, nil
}

func (f *Factory) types() TypeResolver {
	if f.Types == nil {
		return DefaultTypes()
	}
	return f.Types
}

func (f *Factory) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// IsValidation reports whether err is a property validation failure.
func IsValidation(err error) bool {
	var ve *property.ValidationError
	return errors.As(err, &ve)
}
