// Package suggest produces the prompt chips shown on an empty
// conversation view.
package suggest

import "math/rand/v2"

// Pool is the canned prompt pool for the empty state.
var Pool = []string{
	"Explain quantum computing in simple terms",
	"Write a haiku about the ocean",
	"Help me plan a weekend trip",
	"What are some healthy dinner ideas?",
	"Summarize the plot of Don Quixote",
	"Give me tips for improving my focus",
	"Translate 'good morning' into five languages",
	"What's an interesting fact about space?",
	"Draft a polite follow-up email",
	"Recommend a book for a long flight",
}

// Take returns n distinct entries drawn from pool by shuffle-then-take.
// The pool itself is never mutated. When n exceeds the pool size the
// whole pool is returned in shuffled order.
func Take(pool []string, n int) []string {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// Random returns n distinct prompts from the default pool.
func Random(n int) []string {
	return Take(Pool, n)
}
