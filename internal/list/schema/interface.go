package schema

import "context"

// Discoverer learns, per list, which field key backs each human-readable column and what
// label each option id stands for.
type Discoverer interface {
	// Discover runs discovery unless a complete schema is already cached. It never fails:
	// when nothing can be learned it returns the statically configured schema.
	Discover(ctx context.Context, input DiscoverInput) Schema

	// Get returns the cached schema of a list.
	Get(listID string) (Schema, bool)

	// Invalidate drops the cached schema of one list.
	Invalidate(listID string)

	// InvalidateAll drops every cached schema.
	InvalidateAll()
}
