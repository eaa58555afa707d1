package annotations

import (
	"sort"

	"github.com/marginote/annotator-api/internal/models"
	"github.com/marginote/annotator-api/pkg/timecode"
)

// Index is the second-bucket lookup structure used during playback
// scrubbing. Each annotation is inserted into every truncated-second
// bucket its timing spans, so ActiveAt is a single map lookup plus an
// exact containment filter over a small candidate set.
//
// The index holds no authority: it is derived from the store and is
// always reconstructible from a ListByMedia call.
type Index struct {
	buckets map[int64][]uint
	entries map[uint]models.Annotation
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		buckets: make(map[int64][]uint),
		entries: make(map[uint]models.Annotation),
	}
}

// BuildIndex constructs an index from a full annotation list.
func BuildIndex(annotations []models.Annotation) (*Index, error) {
	ix := NewIndex()
	for i := range annotations {
		if err := ix.Insert(&annotations[i]); err != nil {
			return nil, err
		}
	}
	return ix, nil
}

// Insert adds an annotation to every bucket its timing spans. An
// annotation already present is replaced.
func (ix *Index) Insert(a *models.Annotation) error {
	tm, err := a.Timing()
	if err != nil {
		return err
	}

	ix.Remove(a.ID)
	ix.entries[a.ID] = *a

	span := tm.Span()
	for key := timecode.BucketKey(span.Start); key <= timecode.BucketKey(span.End); key++ {
		ix.buckets[key] = append(ix.buckets[key], a.ID)
	}
	return nil
}

// Remove deletes an annotation from the index. Unknown ids are ignored.
func (ix *Index) Remove(id uint) {
	entry, ok := ix.entries[id]
	if !ok {
		return
	}
	delete(ix.entries, id)

	start := timecode.Timestamp(entry.StartMs)
	end := start
	if entry.EndMs != nil {
		end = timecode.Timestamp(*entry.EndMs)
	}
	for key := timecode.BucketKey(start); key <= timecode.BucketKey(end); key++ {
		ids := ix.buckets[key]
		for i, candidate := range ids {
			if candidate == id {
				ix.buckets[key] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ix.buckets[key]) == 0 {
			delete(ix.buckets, key)
		}
	}
}

// ActiveAt returns the annotations whose timing contains t, in canonical
// (start_ms, created_at) order. The bucket narrows the candidate set;
// the exact containment test guarantees correctness at bucket
// boundaries.
func (ix *Index) ActiveAt(t timecode.Timestamp) []models.Annotation {
	var active []models.Annotation
	for _, id := range ix.buckets[timecode.BucketKey(t)] {
		entry := ix.entries[id]
		tm, err := entry.Timing()
		if err != nil {
			// Unreachable for entries that passed Insert validation.
			continue
		}
		if tm.Contains(t) {
			active = append(active, entry)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].StartMs != active[j].StartMs {
			return active[i].StartMs < active[j].StartMs
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active
}

// Len returns the number of indexed annotations.
func (ix *Index) Len() int {
	return len(ix.entries)
}
