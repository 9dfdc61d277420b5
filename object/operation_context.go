package object

import (
	"slices"
	"strconv"
	"strings"
)

// RelationshipInclusion says which relationships are fetched with an object.
type RelationshipInclusion string

const (
	RelationshipsNone   RelationshipInclusion = "none"
	RelationshipsSource RelationshipInclusion = "source"
	RelationshipsTarget RelationshipInclusion = "target"
	RelationshipsBoth   RelationshipInclusion = "both"
)

// OperationContext describes what a fetch asks the repository for.
// Two contexts that would produce different snapshots must produce different
// cache keys; CacheKey guarantees that for every field that affects the
// fetched data.
type OperationContext struct {
	// Filter lists the property ids to fetch. Empty or "*" means all.
	Filter []string

	IncludeAcls             bool
	IncludeAllowableActions bool
	IncludePolicies         bool
	IncludePathSegments     bool
	IncludeRelationships    RelationshipInclusion

	// RenditionFilter lists rendition kinds or mime types. Empty means none.
	RenditionFilter []string

	// CacheEnabled lets a caller bypass the cache for one fetch.
	// It does not affect CacheKey.
	CacheEnabled bool

	// MaxItemsPerPage is a paging hint. It does not affect CacheKey.
	MaxItemsPerPage int
}

// DefaultOperationContext fetches all properties, allowable actions and
// path segments, with caching on.
func DefaultOperationContext() OperationContext {
	return OperationContext{
		Filter:                  []string{"*"},
		IncludeAllowableActions: true,
		IncludePathSegments:     true,
		IncludeRelationships:    RelationshipsNone,
		CacheEnabled:            true,
		MaxItemsPerPage:         100,
	}
}

// FilterString returns the normalized property filter: "*" or a sorted,
// de-duplicated, comma separated id list.
func (oc OperationContext) FilterString() string {
	f := normalizeList(oc.Filter)
	if len(f) == 0 || slices.Contains(f, "*") {
		return "*"
	}
	return strings.Join(f, ",")
}

// RenditionFilterString returns the normalized rendition filter, "cmis:none"
// when empty.
func (oc OperationContext) RenditionFilterString() string {
	f := normalizeList(oc.RenditionFilter)
	if len(f) == 0 {
		return "cmis:none"
	}
	return strings.Join(f, ",")
}

// CacheKey encodes every field that changes what the repository returns.
// Equal keys mean equivalent fetches; the format is not meant to be parsed.
func (oc OperationContext) CacheKey() string {
	var b strings.Builder
	b.WriteString(flag(oc.IncludeAcls))
	b.WriteString(flag(oc.IncludeAllowableActions))
	b.WriteString(flag(oc.IncludePolicies))
	b.WriteString(flag(oc.IncludePathSegments))
	b.WriteByte('|')
	b.WriteString(oc.FilterString())
	b.WriteByte('|')
	rel := oc.IncludeRelationships
	if rel == "" {
		rel = RelationshipsNone
	}
	b.WriteString(string(rel))
	b.WriteByte('|')
	b.WriteString(oc.RenditionFilterString())
	return b.String()
}

func flag(v bool) string {
	return strconv.FormatBool(v)[:1]
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
