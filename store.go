package greenhouse

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// Collection identifies one of the three persisted entity collections.
// Its value is the stable storage identifier for that collection.
type Collection string

const (
	Partners    Collection = "partners"
	Deliveries  Collection = "deliveries"
	Settlements Collection = "settlements"
)

// Collections holds a loaded snapshot of all three entity collections.
type Collections struct {
	Partners    []Partner
	Deliveries  []Delivery
	Settlements []Settlement
}

// Store is the durable backing for the three entity collections.
//
// Load is called once at startup; each Save method is called after every
// successful mutation of that collection. Collections are stored
// independently: a write to deliveries never touches the persisted
// partners blob. A missing or unparsable blob loads as an empty
// collection, never as an error.
type Store interface {
	Load() (Collections, error)
	SavePartners([]Partner) error
	SaveDeliveries([]Delivery) error
	SaveSettlements([]Settlement) error
	Close() error
}

// DirStore persists each collection as a JSONL file in a data directory.
type DirStore struct {
	dir string
}

// NewDirStore creates a store rooted at dir. The directory is created on
// the first save.
func NewDirStore(dir string) *DirStore { return &DirStore{dir: dir} }

func (s *DirStore) path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".jsonl")
}

// loadCollection reads one collection file, falling back to an empty
// collection on a missing or unreadable file.
func loadCollection[T any](path string, decode func(io.Reader) ([]T, error)) []T {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not open collection, starting empty", "path", path, "err", err)
		}
		return nil
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		slog.Warn("could not decode collection, starting empty", "path", path, "err", err)
		return nil
	}
	return records
}

func (s *DirStore) Load() (Collections, error) {
	return Collections{
		Partners:    loadCollection(s.path(Partners), DecodePartners),
		Deliveries:  loadCollection(s.path(Deliveries), DecodeDeliveries),
		Settlements: loadCollection(s.path(Settlements), DecodeSettlements),
	}, nil
}

// saveCollection writes one collection file, creating the directory if needed.
func saveCollection[T any](path string, records []T, encode func(io.Writer, []T) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create data directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not open %q for writing: %w", path, err)
	}
	defer f.Close()

	return encode(f, records)
}

func (s *DirStore) SavePartners(partners []Partner) error {
	return saveCollection(s.path(Partners), partners, EncodePartners)
}

func (s *DirStore) SaveDeliveries(deliveries []Delivery) error {
	return saveCollection(s.path(Deliveries), deliveries, EncodeDeliveries)
}

func (s *DirStore) SaveSettlements(settlements []Settlement) error {
	return saveCollection(s.path(Settlements), settlements, EncodeSettlements)
}

func (s *DirStore) Close() error { return nil }

// MemStore keeps collections in process memory. It backs tests and
// throwaway registries.
type MemStore struct {
	data Collections
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (Collections, error) {
	return Collections{
		Partners:    slices.Clone(s.data.Partners),
		Deliveries:  slices.Clone(s.data.Deliveries),
		Settlements: slices.Clone(s.data.Settlements),
	}, nil
}

func (s *MemStore) SavePartners(partners []Partner) error {
	s.data.Partners = slices.Clone(partners)
	return nil
}

func (s *MemStore) SaveDeliveries(deliveries []Delivery) error {
	s.data.Deliveries = slices.Clone(deliveries)
	return nil
}

func (s *MemStore) SaveSettlements(settlements []Settlement) error {
	s.data.Settlements = slices.Clone(settlements)
	return nil
}

func (s *MemStore) Close() error { return nil }

var _ Store = (*DirStore)(nil)
var _ Store = (*MemStore)(nil)
