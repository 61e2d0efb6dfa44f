package oui

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/netkit-go/netkit/ipaddr"
)

// maxBlockSpan bounds how far back the sorted index a Lookup scan must
// walk: no registry block is wider than MA-L/CID's 2^24 addresses, so a
// record whose StartDecimal lies further back than that from the
// target cannot possibly cover it (spec §9: "a contiguous array sorted
// by start_decimal").
const maxBlockSpan = 1 << 24

// Store is the single-table OUI registry described in spec §6: primary
// key (oui_id, start_decimal, end_decimal), persisted as a gob-encoded
// slice of rows on disk (no database/embedded-KV library is present anywhere in
// the retrieved pack -- see DESIGN.md), with an in-memory array sorted
// by start_decimal rebuilt on every Open/BatchUpsert for O(log n + k)
// lookup.
//
// The persisted map is the write path (BatchUpsert dedups and upserts
// by primary key); the sorted slice is a read-only index rebuilt from
// it. Concurrent readers are safe once built; writes are serialized by
// mu, matching the single-writer/many-readers model of spec §5.
type Store struct {
	mu    sync.RWMutex
	path  string
	rows  map[key]Record
	index []Record // sorted ascending by StartDecimal
}

// Open loads an existing gob-encoded store from path, or returns an
// empty store ready to be populated if the file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, rows: make(map[key]Record)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open OUI store %s: %w: %v", path, ErrStore, err)
	}
	defer f.Close()

	var rows []Record
	if err := gob.NewDecoder(f).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode OUI store %s: %w: %v", path, ErrStore, err)
	}
	for _, r := range rows {
		s.rows[r.key()] = r
	}
	s.rebuildIndex()
	return s, nil
}

// BatchUpsert deduplicates incoming records by primary key, updates
// existing rows and inserts new ones, persists the full row set back to
// disk, and rebuilds the in-memory sorted index. Reloading afterward is
// idempotent (spec §6).
func (s *Store) BatchUpsert(records []Record) (inserted, updated int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[key]Record, len(records))
	for _, r := range records {
		seen[r.key()] = r // last write for a duplicate key wins, per batch
	}

	for k, r := range seen {
		if _, exists := s.rows[k]; exists {
			updated++
		} else {
			inserted++
		}
		s.rows[k] = r
	}

	if err := s.persist(); err != nil {
		return 0, 0, err
	}
	s.rebuildIndex()
	return inserted, updated, nil
}

func (s *Store) persist() error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write OUI store %s: %w: %v", s.path, ErrStore, err)
	}

	rows := make([]Record, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	if err := gob.NewEncoder(f).Encode(rows); err != nil {
		f.Close()
		return fmt.Errorf("encode OUI store %s: %w: %v", s.path, ErrStore, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close OUI store %s: %w: %v", s.path, ErrStore, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename OUI store %s: %w: %v", s.path, ErrStore, err)
	}
	return nil
}

func (s *Store) rebuildIndex() {
	index := make([]Record, 0, len(s.rows))
	for _, r := range s.rows {
		index = append(index, r)
	}
	sort.Slice(index, func(i, j int) bool {
		if index[i].StartDecimal != index[j].StartDecimal {
			return index[i].StartDecimal < index[j].StartDecimal
		}
		return index[i].EndDecimal < index[j].EndDecimal
	})
	s.index = index
}

// Len reports the number of rows currently in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// Lookup returns every record whose [StartDecimal, EndDecimal] range
// covers mac, or nil if none do (spec §7: NotFound is an empty result,
// not an error, for bulk search).
func (s *Store) Lookup(mac ipaddr.MacAddr) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target := mac.AsDecimal()
	idx := s.index
	// Upper bound: first index whose StartDecimal exceeds target. Every
	// possible match has StartDecimal <= target, so it lies strictly
	// before this point in the ascending-by-start array.
	upper := sort.Search(len(idx), func(i int) bool { return idx[i].StartDecimal > target })

	var lowerBound uint64
	if target > maxBlockSpan {
		lowerBound = target - maxBlockSpan
	}

	var out []Record
	for i := upper - 1; i >= 0; i-- {
		if idx[i].StartDecimal < lowerBound {
			break
		}
		if idx[i].EndDecimal >= target {
			out = append(out, idx[i])
		}
	}
	return out
}

// All returns every record currently in the store in ascending
// StartDecimal order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.index))
	copy(out, s.index)
	return out
}
