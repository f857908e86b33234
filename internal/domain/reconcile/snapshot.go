package reconcile

import "github.com/flatfundpro/dues-portal/internal/domain/entity"

// Snapshot is the registry and ledger state read once per classification.
// It is never mutated by this package.
type Snapshot struct {
	Blocks      []entity.Block
	Flats       []entity.Flat
	Collections []entity.ExpectedCollection
	Payments    []entity.PaymentRecord
}

// Collection returns the collection with the given id
func (s *Snapshot) Collection(id string) (*entity.ExpectedCollection, bool) {
	for i := range s.Collections {
		if s.Collections[i].ID == id {
			return &s.Collections[i], true
		}
	}
	return nil, false
}

// paymentsByFlat indexes ledger records by flat id
func (s *Snapshot) paymentsByFlat() map[string][]*entity.PaymentRecord {
	idx := make(map[string][]*entity.PaymentRecord, len(s.Flats))
	for i := range s.Payments {
		p := &s.Payments[i]
		idx[p.FlatID] = append(idx[p.FlatID], p)
	}
	return idx
}

func (s *Snapshot) blockNames() map[string]string {
	names := make(map[string]string, len(s.Blocks))
	for _, b := range s.Blocks {
		names[b.ID] = b.Name
	}
	return names
}
