package constants

const (
	// Maximum number of resolver calls running at once for a single stream request
	ResolverConcurrency = 8

	// Default per-provider rate limit (requests per second) and burst
	ProviderRateLimit = 5
	ProviderRateBurst = 10
)
