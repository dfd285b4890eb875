package greenhouse

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists each collection as an independent blob in a single
// sqlite database file. The blob payload is the same JSONL stream the
// DirStore writes, keyed by the collection's storage identifier.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite database %q: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (name TEXT PRIMARY KEY, data BLOB NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize sqlite database %q: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) readBlob(c Collection) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM blobs WHERE name = ?`, string(c)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return data, err
}

func (s *SQLiteStore) writeBlob(c Collection, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (name, data) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		string(c), data)
	if err != nil {
		return fmt.Errorf("could not save %s: %w", c, err)
	}
	return nil
}

// loadBlob decodes one collection blob, falling back to an empty
// collection on a missing or unparsable blob.
func loadBlob[T any](s *SQLiteStore, c Collection, decode func(io.Reader) ([]T, error)) []T {
	data, err := s.readBlob(c)
	if err != nil {
		slog.Warn("could not read collection, starting empty", "collection", c, "err", err)
		return nil
	}
	if data == nil {
		return nil
	}
	records, err := decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("could not decode collection, starting empty", "collection", c, "err", err)
		return nil
	}
	return records
}

func (s *SQLiteStore) Load() (Collections, error) {
	return Collections{
		Partners:    loadBlob(s, Partners, DecodePartners),
		Deliveries:  loadBlob(s, Deliveries, DecodeDeliveries),
		Settlements: loadBlob(s, Settlements, DecodeSettlements),
	}, nil
}

func saveBlob[T any](s *SQLiteStore, c Collection, records []T, encode func(io.Writer, []T) error) error {
	var b bytes.Buffer
	if err := encode(&b, records); err != nil {
		return fmt.Errorf("could not encode %s: %w", c, err)
	}
	return s.writeBlob(c, b.Bytes())
}

func (s *SQLiteStore) SavePartners(partners []Partner) error {
	return saveBlob(s, Partners, partners, EncodePartners)
}

func (s *SQLiteStore) SaveDeliveries(deliveries []Delivery) error {
	return saveBlob(s, Deliveries, deliveries, EncodeDeliveries)
}

func (s *SQLiteStore) SaveSettlements(settlements []Settlement) error {
	return saveBlob(s, Settlements, settlements, EncodeSettlements)
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
