package reconcile

// Export for testing
var (
	ResolveCandidates = resolveCandidates
	ToSnakeCase       = toSnakeCase
)
