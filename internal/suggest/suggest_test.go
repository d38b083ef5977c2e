package suggest

import "testing"

func TestTake(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}

	t.Run("returns exactly n distinct entries", func(t *testing.T) {
		for n := 1; n <= len(pool); n++ {
			got := Take(pool, n)
			if len(got) != n {
				t.Fatalf("Take(pool, %d) returned %d entries", n, len(got))
			}

			seen := make(map[string]bool)
			for _, s := range got {
				if seen[s] {
					t.Errorf("Take(pool, %d) returned duplicate %q", n, s)
				}
				seen[s] = true

				found := false
				for _, p := range pool {
					if p == s {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Take(pool, %d) returned %q not in pool", n, s)
				}
			}
		}
	})

	t.Run("clamps n to pool size", func(t *testing.T) {
		if got := Take(pool, 100); len(got) != len(pool) {
			t.Errorf("Take(pool, 100) returned %d entries, want %d", len(got), len(pool))
		}
	})

	t.Run("zero and negative n return nothing", func(t *testing.T) {
		if got := Take(pool, 0); got != nil {
			t.Errorf("Take(pool, 0) = %v", got)
		}
		if got := Take(pool, -1); got != nil {
			t.Errorf("Take(pool, -1) = %v", got)
		}
	})

	t.Run("pool is not mutated", func(t *testing.T) {
		before := []string{"a", "b", "c", "d", "e"}
		for range 20 {
			Take(pool, len(pool))
		}
		for i := range pool {
			if pool[i] != before[i] {
				t.Fatalf("pool mutated: %v", pool)
			}
		}
	})
}

func TestRandom(t *testing.T) {
	got := Random(3)
	if len(got) != 3 {
		t.Errorf("Random(3) returned %d entries", len(got))
	}
}
