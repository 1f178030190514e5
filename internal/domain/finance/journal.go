package finance

import (
	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/domain/shared/valueobject"
)

// Journal keys the stored entry list by calendar day while preserving the
// stored order. When a loaded list holds two rows for the same day, the first
// one owns the key; the rest stay listed and can still be removed by id.
type Journal struct {
	entries []FinancialEntry
	byDay   map[valueobject.Day]int
}

// NewJournal builds a journal over a copy of entries
func NewJournal(entries []FinancialEntry) *Journal {
	j := &Journal{entries: append([]FinancialEntry(nil), entries...)}
	j.reindex()
	return j
}

func (j *Journal) reindex() {
	j.byDay = make(map[valueobject.Day]int, len(j.entries))
	for i, e := range j.entries {
		if _, taken := j.byDay[e.Date]; !taken {
			j.byDay[e.Date] = i
		}
	}
}

// Find returns the entry for day, if any
func (j *Journal) Find(day valueobject.Day) (FinancialEntry, bool) {
	i, ok := j.byDay[day]
	if !ok {
		return FinancialEntry{}, false
	}
	return j.entries[i], true
}

// FindOrCreate returns the entry for day, or a new unsaved entry with the
// default markup. created reports which of the two happened.
func (j *Journal) FindOrCreate(day valueobject.Day) (entry FinancialEntry, created bool) {
	if e, ok := j.Find(day); ok {
		return e, false
	}
	return NewFinancialEntry(day), true
}

// Put stores entry under its day, replacing the existing row in place or
// prepending a new one.
func (j *Journal) Put(entry FinancialEntry) error {
	if entry.Date.IsZero() {
		return shared.InvalidInput("entry date is required")
	}
	if i, ok := j.byDay[entry.Date]; ok {
		j.entries[i] = entry
		return nil
	}
	j.entries = append([]FinancialEntry{entry}, j.entries...)
	j.reindex()
	return nil
}

// Remove deletes the entry with the given id
func (j *Journal) Remove(id string) error {
	for i, e := range j.entries {
		if e.ID == id {
			j.entries = append(j.entries[:i:i], j.entries[i+1:]...)
			j.reindex()
			return nil
		}
	}
	return shared.NotFound("entry not found")
}

// Entries returns a copy of the entries in stored order
func (j *Journal) Entries() []FinancialEntry {
	return append([]FinancialEntry(nil), j.entries...)
}

// Len returns the number of stored entries
func (j *Journal) Len() int {
	return len(j.entries)
}
