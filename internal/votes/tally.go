package votes

import (
	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
)

// OptionCount is one row of a tally.
type OptionCount struct {
	OptionID uuid.UUID `json:"optionId"`
	Text     string    `json:"text"`
	Count    int64     `json:"count"`
}

// Total sums the counts, which equals the number of distinct voters.
func Total(counts []OptionCount) int64 {
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	return total
}

// buildTally lays counts over the options in declaration order, zero-filling options
// nobody picked.
func buildTally(options []models.Option, counts map[uuid.UUID]int64) []OptionCount {
	out := make([]OptionCount, 0, len(options))
	for _, o := range options {
		out = append(out, OptionCount{OptionID: o.ID, Text: o.Text, Count: counts[o.ID]})
	}
	return out
}
