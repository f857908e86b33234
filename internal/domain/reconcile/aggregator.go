package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

// Summary rolls FlatStatus values up to block or apartment level
type Summary struct {
	BlockID        string          `json:"block_id,omitempty"`
	BlockName      string          `json:"block_name,omitempty"`
	TotalFlats     int             `json:"total_flats"`
	Counts         map[Status]int  `json:"counts_by_status"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalExpected  decimal.Decimal `json:"total_expected"`
}

// Aggregate reduces statuses for one collection to counts and totals.
// Every status key is present, even with a zero count.
func Aggregate(statuses []FlatStatus) Summary {
	sum := Summary{
		Counts: map[Status]int{
			StatusPaid:    0,
			StatusPartial: 0,
			StatusPending: 0,
		},
		TotalCollected: decimal.Zero,
		TotalExpected:  decimal.Zero,
	}
	for _, st := range statuses {
		sum.TotalFlats++
		sum.Counts[st.Status]++
		sum.TotalCollected = sum.TotalCollected.Add(st.PaidAmount)
		sum.TotalExpected = sum.TotalExpected.Add(st.ExpectedAmount)
	}
	return sum
}

// AggregateByBlock returns one Summary per block, ordered by block name
func AggregateByBlock(statuses []FlatStatus) []Summary {
	groups := map[string][]FlatStatus{}
	names := map[string]string{}
	for _, st := range statuses {
		groups[st.BlockID] = append(groups[st.BlockID], st)
		names[st.BlockID] = st.BlockName
	}

	out := make([]Summary, 0, len(groups))
	for id, group := range groups {
		sum := Aggregate(group)
		sum.BlockID = id
		sum.BlockName = names[id]
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BlockName != out[j].BlockName {
			return out[i].BlockName < out[j].BlockName
		}
		return out[i].BlockID < out[j].BlockID
	})
	return out
}

// CollectionReport is everything the presentation layer shows for one
// selected collection.
type CollectionReport struct {
	Collection entity.ExpectedCollection `json:"collection"`
	Flats      []FlatStatus              `json:"flats"`
	Summary    Summary                   `json:"summary"`
	Blocks     []Summary                 `json:"blocks"`
}

// BuildReport recomputes every flat's status against the collection from
// scratch and reduces the result.
func (c *Classifier) BuildReport(snap *Snapshot, collection *entity.ExpectedCollection) *CollectionReport {
	flats := c.ClassifyCollection(snap, collection)
	return &CollectionReport{
		Collection: *collection,
		Flats:      flats,
		Summary:    Aggregate(flats),
		Blocks:     AggregateByBlock(flats),
	}
}
