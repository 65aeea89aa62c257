package routegen

// CacheStatus is the status of the route cache
type CacheStatus struct {
	// The number of keys with at least one stored route
	Keys int `json:"keys"`

	// The number of keys that are full and rotating
	FullKeys int `json:"full_keys"`

	// The total number of stored routes
	Variants int `json:"variants"`

	MaxVariants int `json:"max_variants"`

	// The number of routes that have been generated, including ones dropped by a reset
	Generations uint64 `json:"generations"`

	// The number of requests served from stored routes
	Hits uint64 `json:"hits"`
}

// Status is the status of the route generator service
type Status struct {
	Cache CacheStatus `json:"cache"`

	// The number of generations currently in progress
	GenerationsInProgress int64 `json:"generations_in_progress"`
}
