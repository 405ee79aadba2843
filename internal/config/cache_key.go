package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// LibraryPayloadKey returns the cache key holding the serialized library catalog.
func (r *CacheKeyStruct) LibraryPayloadKey() string {
	return "library:payload"
}

// OfflineEntryKey returns the hash key of a cached response for one path.
func (r *CacheKeyStruct) OfflineEntryKey(version, path string) string {
	return fmt.Sprintf("offline:%s:entry:%s", version, path)
}

// OfflineIndexKey returns the set listing every path cached under a version.
func (r *CacheKeyStruct) OfflineIndexKey(version string) string {
	return fmt.Sprintf("offline:%s:paths", version)
}

// OfflineVersionsKey returns the set of all cache versions ever installed.
func (r *CacheKeyStruct) OfflineVersionsKey() string {
	return "offline:versions"
}

// FactChannel returns the Redis PubSub channel the fact rotator publishes to.
func (r *CacheKeyStruct) FactChannel() string {
	return "facts:rotation"
}

var CacheKey = NewCacheKeyStruct()
