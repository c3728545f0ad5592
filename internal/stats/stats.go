// Package stats derives display aggregates from entry and signature
// lists. Every function is pure: no I/O, no mutation of its inputs, so
// the same lists always produce the same totals regardless of where
// they were fetched from.
package stats

import "github.com/ndtverified/hours-service/internal/model"

// MethodHours is one (method, hours) pair in a per-method breakdown.
type MethodHours struct {
	Method string  `json:"method"`
	Hours  float64 `json:"hours"`
}

// SignatureCounts holds the pending/verified tallies for a technician's
// signature requests. The two counts are independent: a status outside
// the known pair contributes to neither.
type SignatureCounts struct {
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
}

// Summary is the dashboard aggregate for one technician.
type Summary struct {
	TotalNDTHours      float64       `json:"total_ndt_hours"`
	TotalRopeHours     float64       `json:"total_rope_hours"`
	NDTEntries         int           `json:"ndt_entries"`
	RopeEntries        int           `json:"rope_entries"`
	PendingSignatures  int           `json:"pending_signatures"`
	VerifiedSignatures int           `json:"verified_signatures"`
	MethodTotals       []MethodHours `json:"method_totals"`
}

// TotalHours sums the hours of every NDT entry. Plain float64
// accumulation; drift for very large lists is accepted.
func TotalHours(entries []model.NDTEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Hours
	}
	return sum
}

// TotalRopeHours sums the rope hours of every rope entry.
func TotalRopeHours(entries []model.RopeEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.RopeHours
	}
	return sum
}

// MethodTotals groups entries by method and sums hours per group. The
// output preserves first-seen order: the method of the earliest entry
// in the list comes first, not the largest or alphabetically smallest
// group. Every entry contributes to exactly one group.
func MethodTotals(entries []model.NDTEntry) []MethodHours {
	index := make(map[string]int, len(entries))
	out := make([]MethodHours, 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.Method]; ok {
			out[i].Hours += e.Hours
			continue
		}
		index[e.Method] = len(out)
		out = append(out, MethodHours{Method: e.Method, Hours: e.Hours})
	}
	return out
}

// CountSignatures tallies Pending and Confirmed requests independently.
func CountSignatures(sigs []model.SignatureStatusRef) SignatureCounts {
	var c SignatureCounts
	for _, s := range sigs {
		switch s.Status {
		case model.SignatureStatusPending:
			c.Pending++
		case model.SignatureStatusConfirmed:
			c.Verified++
		}
	}
	return c
}

// Summarize reduces the three fetched lists into the dashboard numbers.
func Summarize(ndt []model.NDTEntry, rope []model.RopeEntry, sigs []model.SignatureStatusRef) Summary {
	counts := CountSignatures(sigs)
	return Summary{
		TotalNDTHours:      TotalHours(ndt),
		TotalRopeHours:     TotalRopeHours(rope),
		NDTEntries:         len(ndt),
		RopeEntries:        len(rope),
		PendingSignatures:  counts.Pending,
		VerifiedSignatures: counts.Verified,
		MethodTotals:       MethodTotals(ndt),
	}
}
