// Package permutation enumerates permutations of a sequence in
// lexicographic order.
//
// Next advances a sequence in place to its successor: it finds the
// rightmost ascent, swaps the element there with the smallest larger
// element to its right, and reverses the remaining suffix so that it is
// ascending again. Generate repeats that step to collect a fixed number
// of consecutive permutations.
package permutation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

// Identity returns the sequence 1..n. A non-positive n yields an empty sequence.
func Identity(n int) []int {
	if n <= 0 {
		return []int{}
	}

	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}

	return seq
}

// Next rearranges seq into its lexicographic successor. When seq is
// already the greatest permutation it is left unchanged and
// apperror.ErrNoSuccessor is returned.
func Next[S ~[]E, E cmp.Ordered](seq S) error {
	pivot := ascentIndex(seq)
	if pivot < 0 {
		return apperror.ErrNoSuccessor
	}

	successor := successorIndex(seq, pivot)
	seq[pivot], seq[successor] = seq[successor], seq[pivot]

	slices.Reverse(seq[pivot+1:])

	return nil
}

// Generate returns count consecutive permutations starting with start
// itself. start is not modified. If the greatest permutation is reached
// before count results are collected, the results so far are returned
// with an error wrapping apperror.ErrNoSuccessor.
func Generate[S ~[]E, E cmp.Ordered](start S, count int) ([]S, error) {
	if count <= 0 {
		return []S{}, nil
	}

	current := slices.Clone(start)

	result := make([]S, 0, count)
	result = append(result, slices.Clone(current))

	for len(result) < count {
		if err := Next(current); err != nil {
			return result, fmt.Errorf("stopped after %d of %d permutations: %w", len(result), count, err)
		}

		result = append(result, slices.Clone(current))
	}

	return result, nil
}

// Format renders seq as "[1, 2, 3]".
func Format[S ~[]E, E any](seq S) string {
	parts := make([]string, len(seq))
	for i, elem := range seq {
		parts[i] = fmt.Sprint(elem)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// ascentIndex returns the rightmost i with seq[i] < seq[i+1], or -1.
func ascentIndex[S ~[]E, E cmp.Ordered](seq S) int {
	for i := len(seq) - 2; i >= 0; i-- {
		if seq[i] < seq[i+1] {
			return i
		}
	}

	return -1
}

// successorIndex returns the index of the smallest element right of pivot
// that is greater than seq[pivot]. The first one found wins on ties.
func successorIndex[S ~[]E, E cmp.Ordered](seq S, pivot int) int {
	found := pivot + 1
	for i := pivot + 2; i < len(seq); i++ {
		if seq[i] > seq[pivot] && seq[i] < seq[found] {
			found = i
		}
	}

	return found
}
