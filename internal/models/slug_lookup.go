package models

import "time"

// SlugLookup represents a per-query hit count by match type.
type SlugLookup struct {
	Query      string
	MatchType  MatchType
	Count      int64
	LastSeenAt time.Time
}

// SlugLookupTotal is the aggregated lookup count for one match type.
type SlugLookupTotal struct {
	MatchType MatchType
	Count     int64
}
