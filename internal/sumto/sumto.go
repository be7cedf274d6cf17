// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sumto provides three equivalent ways to compute the sum of
// the integers 1..n. They differ only in complexity: constant-time
// closed form, linear iteration, and divide-and-conquer recursion.
package sumto

import "fmt"

// maxN is the largest n whose sum still fits in an int64.
const maxN = 4294967295

func check(n int64) error {
	if n < 0 {
		return fmt.Errorf("n must be non-negative, got %d", n)
	}
	if n > maxN {
		return fmt.Errorf("sum of 1..%d overflows int64", n)
	}
	return nil
}

// Formula computes the sum with Gauss' closed form in O(1). The even
// factor is halved before multiplying so the intermediate product
// cannot overflow for any valid n.
func Formula(n int64) (int64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	if n%2 == 0 {
		return n / 2 * (n + 1), nil
	}
	return (n + 1) / 2 * n, nil
}

// Iterative computes the sum by accumulation in O(n).
func Iterative(n int64) (int64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	var sum int64
	for i := int64(1); i <= n; i++ {
		sum += i
	}
	return sum, nil
}

// Recursive computes the sum by splitting the range in half, using
// O(log n) stack depth.
func Recursive(n int64) (int64, error) {
	if err := check(n); err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	return rangeSum(1, n), nil
}

func rangeSum(lo, hi int64) int64 {
	if lo == hi {
		return lo
	}
	if hi-lo == 1 {
		return lo + hi
	}
	mid := (lo + hi) / 2
	return rangeSum(lo, mid) + rangeSum(mid+1, hi)
}
