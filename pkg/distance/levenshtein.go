// Package distance answers "are these two words within k edits?" without
// paying for a full Levenshtein table.
package distance

// NotWithinK is returned when the edit distance is provably greater than k.
const NotWithinK = -1

// DefaultK is the bound every narrowing rule uses: one edit is "close".
const DefaultK = 1

// Bounded returns the Levenshtein distance between a and b when it is at
// most k, and NotWithinK otherwise. It trims the common prefix and suffix,
// then sweeps a band of width 2k+1 around the diagonal, giving up as soon
// as a whole row of the band exceeds k.
func Bounded(a, b string, k int) int {
	if k < 0 {
		return NotWithinK
	}
	if a == b {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(long)-len(short) > k {
		return NotWithinK
	}

	start := 0
	for start < len(short) && short[start] == long[start] {
		start++
	}
	endS, endL := len(short), len(long)
	for endS > start && short[endS-1] == long[endL-1] {
		endS--
		endL--
	}
	short, long = short[start:endS], long[start:endL]

	// columns are the shorter word, rows the longer one
	m, n := len(short), len(long)
	if m == 0 {
		// n equals the original length difference, already known to be <= k
		return n
	}

	inf := k + 1
	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := range prev {
		if j <= k {
			prev[j] = j
		} else {
			prev[j] = inf
		}
	}

	for i := 1; i <= n; i++ {
		lo := max(1, i-k)
		hi := min(m, i+k)

		left := inf
		if lo == 1 && i <= k {
			left = i
		}
		curr[lo-1] = left
		rowMin := left

		ch := long[i-1]
		for j := lo; j <= hi; j++ {
			cost := 1
			if short[j-1] == ch {
				cost = 0
			}
			v := min(prev[j-1]+cost, prev[j]+1, curr[j-1]+1)
			if v > inf {
				v = inf
			}
			curr[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		// the next row reads one cell past this band
		if hi < m {
			curr[hi+1] = inf
		}

		if rowMin > k {
			return NotWithinK
		}
		prev, curr = curr, prev
	}

	if d := prev[m]; d <= k {
		return d
	}
	return NotWithinK
}

// Within reports whether a and b are at most k edits apart.
func Within(a, b string, k int) bool {
	return Bounded(a, b, k) != NotWithinK
}

// IsClose reports whether a and b are exactly one edit apart.
func IsClose(a, b string) bool {
	return Bounded(a, b, DefaultK) == 1
}
