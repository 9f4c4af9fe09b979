package usecase

import (
	"impactAdminWs/internal/modules/console/domain"
	"impactAdminWs/internal/platform/querycache"
)

const (
	keyRoot   = "admin"
	keyList   = "list"
	keyDetail = "detail"
)

// ResourceScope is the invalidation prefix covering every list and detail of resource.
func ResourceScope(resource string) querycache.Key {
	return querycache.Key{keyRoot, resource}
}

// ListScope covers every cached list page of resource.
func ListScope(resource string) querycache.Key {
	return ResourceScope(resource).With(keyList)
}

func ListKey(resource string, query domain.FilterState) querycache.Key {
	return ListScope(resource).With(query.CanonicalKey())
}

func DetailKey(resource, id string) querycache.Key {
	return ResourceScope(resource).With(keyDetail, id)
}
