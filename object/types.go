package object

import "github.com/krisalay/object-cache/property"

// BaseDefinitions returns the properties every object type carries.
func BaseDefinitions() []property.Definition {
	return []property.Definition{
		{ID: PropObjectID, Type: property.TypeID, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: PropObjectTypeID, Type: property.TypeID, Cardinality: property.Single, Updatability: property.OnCreate},
		{ID: PropBaseTypeID, Type: property.TypeID, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: PropName, Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadWrite},
		{ID: "cmis:createdBy", Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: "cmis:creationDate", Type: property.TypeDateTime, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: "cmis:lastModifiedBy", Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: "cmis:lastModificationDate", Type: property.TypeDateTime, Cardinality: property.Single, Updatability: property.ReadOnly},
		{ID: "cmis:changeToken", Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
	}
}

// DefaultTypes registers cmis:document and cmis:folder with their usual
// properties.
func DefaultTypes() TypeRegistry {
	doc := append(BaseDefinitions(),
		property.Definition{ID: "cmis:contentStreamLength", Type: property.TypeInteger, Cardinality: property.Single, Updatability: property.ReadOnly},
		property.Definition{ID: "cmis:contentStreamMimeType", Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
		property.Definition{ID: "cmis:isLatestVersion", Type: property.TypeBoolean, Cardinality: property.Single, Updatability: property.ReadOnly},
		property.Definition{ID: "cmis:versionLabel", Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
	)
	folder := append(BaseDefinitions(),
		property.Definition{ID: PropPath, Type: property.TypeString, Cardinality: property.Single, Updatability: property.ReadOnly},
		property.Definition{ID: "cmis:parentId", Type: property.TypeID, Cardinality: property.Single, Updatability: property.ReadOnly},
		property.Definition{ID: "cmis:allowedChildObjectTypeIds", Type: property.TypeID, Cardinality: property.Multi, Updatability: property.ReadOnly},
	)
	return TypeRegistry{
		string(Document): property.NewTypeDefinition(string(Document), doc...),
		string(Folder):   property.NewTypeDefinition(string(Folder), folder...),
	}
}
