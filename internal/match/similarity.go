package match

// Similarity returns a matching-blocks similarity ratio in [0,1]: the longest
// common contiguous substring is found, the segments to its left and right
// are matched recursively, and the summed matched length M yields
// 2*M / (len(a)+len(b)).
//
// Two empty strings score 1.0: they are trivially identical, consistent with
// Similarity(a, a) == 1 for every a.
func Similarity(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	// Canonicalize the argument order so Similarity(a,b) == Similarity(b,a)
	// even when tie-breaking between equal-length common blocks.
	if len(ar) > len(br) || (len(ar) == len(br) && a > b) {
		ar, br = br, ar
	}
	return 2 * float64(matchedLen(ar, br)) / float64(total)
}

// matchedLen sums the lengths of the matching blocks between a and b.
func matchedLen(a, b []rune) int {
	ai, bi, n := longestBlock(a, b)
	if n == 0 {
		return 0
	}
	return n + matchedLen(a[:ai], b[:bi]) + matchedLen(a[ai+n:], b[bi+n:])
}

// longestBlock finds the longest common contiguous substring of a and b,
// returning its start in a, start in b, and length. On ties the earliest
// occurrence in a, then in b, wins.
func longestBlock(a, b []rune) (int, int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	bestA, bestB, bestLen := 0, 0, 0
	// prev[j] is the length of the common suffix ending at a[i-1], b[j-1].
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > bestLen {
					bestLen = cur[j]
					bestA = i - cur[j]
					bestB = j - cur[j]
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return bestA, bestB, bestLen
}
