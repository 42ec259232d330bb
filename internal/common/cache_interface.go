package common

import "time"

// CacheInterface is the read-through cache used for catalog data.
type CacheInterface interface {
	Set(key string, value interface{}, duration time.Duration)

	// Get returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Flush drops every entry
	Flush()
}
