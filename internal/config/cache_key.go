package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RevokedTokenKey returns the cache key marking an access token id as logged out
func (r *CacheKeyStruct) RevokedTokenKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}

// RateLimitKey returns the cache key counting requests of a client within a window
func (r *CacheKeyStruct) RateLimitKey(clientAddr string, window int64) string {
	return fmt.Sprintf("ratelimit:%s:%d", clientAddr, window)
}

var CacheKey = NewCacheKeyStruct()
