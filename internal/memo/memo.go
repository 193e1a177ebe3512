// Package memo allocates trip memo numbers of the form SBT-###.
//
// Next works on a snapshot of existing memo numbers and takes no lock. Two
// operators allocating from the same snapshot receive the same number, and
// because invoices are upserted on trips_memo_no the second save overwrites
// the first. The console is operated by one person at a time, so the race is
// accepted rather than guarded.
package memo

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	Prefix = "SBT"
	Seed   = "SBT-001"
)

// Next returns the memo number following the highest numeric suffix in memos.
// Suffixes that are not all digits count as zero. Suffixes have no upper
// bound, so the result is always past every suffix seen.
func Next(memos []string) string {
	highest := new(big.Int)
	for _, m := range memos {
		if n, ok := suffix(m); ok && n.Cmp(highest) > 0 {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%03d", Prefix, highest.Add(highest, big.NewInt(1)))
}

func suffix(m string) (*big.Int, bool) {
	i := strings.LastIndex(m, "-")
	if i < 0 {
		return nil, false
	}
	digits := strings.TrimSpace(m[i+1:])
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return nil, false
	}
	return new(big.Int).SetString(digits, 10)
}
