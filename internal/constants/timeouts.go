// Package constants defines timeout values used throughout the application.
package constants

import "time"

const (
	// Request timeout for the entire stream request
	RequestTimeout = 30 * time.Second

	// Timeout for a single provider resolve attempt
	ResolverTimeout = 12 * time.Second

	// Timeout for fetching the events feed
	FeedTimeout = 20 * time.Second

	// Interval between event feed refreshes
	RefreshInterval = 5 * time.Minute

	// Time allowed for in-flight requests on shutdown
	ShutdownTimeout = 10 * time.Second
)
