package domain

const (
	TierDefault       = "default"
	TierAuthenticated = "authenticated"
	TierChat          = "chat"
)

// RateLimitTier is one named fixed-window policy. Tiers are loaded once at
// startup and are immutable afterwards.
type RateLimitTier struct {
	Name          string
	Requests      int
	WindowSeconds int
}

// RateLimitResult carries the outcome of one admission check. The quota
// fields are attached to the response as X-RateLimit-* headers regardless of
// whether the request was admitted.
type RateLimitResult struct {
	Limited   bool
	Limit     int
	Remaining int
	// ResetAt is the epoch second at which the current window ends and the
	// counter starts over.
	ResetAt int64
	Tier    string
}
