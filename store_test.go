package greenhouse

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogrod/greenhouse/date"
)

func TestDirStore_RoundTrip(t *testing.T) {
	store := NewDirStore(t.TempDir())

	partners := []Partner{{ID: "p1", Name: "Krause", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}}
	deliveries := []Delivery{{ID: "d1", Date: date.MustParse("2024-03-01"), Quantity: Q(10), RecipientID: "p1"}}
	settlements := []Settlement{{ID: "s1", FromDate: date.MustParse("2024-02-01"), ToDate: date.MustParse("2024-02-07"), AmountPaid: A(50)}}

	if err := store.SavePartners(partners); err != nil {
		t.Fatalf("SavePartners: %v", err)
	}
	if err := store.SaveDeliveries(deliveries); err != nil {
		t.Fatalf("SaveDeliveries: %v", err)
	}
	if err := store.SaveSettlements(settlements); err != nil {
		t.Fatalf("SaveSettlements: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Partners) != 1 || got.Partners[0].Name != "Krause" {
		t.Errorf("Partners = %+v", got.Partners)
	}
	if len(got.Deliveries) != 1 || got.Deliveries[0].ID != "d1" {
		t.Errorf("Deliveries = %+v", got.Deliveries)
	}
	if len(got.Settlements) != 1 || !got.Settlements[0].AmountPaid.Equal(A(50)) {
		t.Errorf("Settlements = %+v", got.Settlements)
	}
}

func TestDirStore_CreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewDirStore(dir)

	if err := store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}}); err != nil {
		t.Fatalf("SavePartners: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "partners.jsonl")); err != nil {
		t.Errorf("partners.jsonl not written: %v", err)
	}
}

func TestDirStore_MissingFilesLoadEmpty(t *testing.T) {
	store := NewDirStore(filepath.Join(t.TempDir(), "never-written"))

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load on missing directory: %v", err)
	}
	if len(got.Partners) != 0 || len(got.Deliveries) != 0 || len(got.Settlements) != 0 {
		t.Errorf("Load = %+v, want empty collections", got)
	}
}

func TestDirStore_CorruptFileLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	store := NewDirStore(dir)

	if err := store.SaveDeliveries([]Delivery{{ID: "d1", Date: date.MustParse("2024-03-01")}}); err != nil {
		t.Fatalf("SaveDeliveries: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "deliveries.jsonl"), []byte("{broken\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// An intact sibling collection must still load.
	if err := store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}}); err != nil {
		t.Fatalf("SavePartners: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load with corrupt file: %v", err)
	}
	if len(got.Deliveries) != 0 {
		t.Errorf("corrupt deliveries loaded as %+v, want empty", got.Deliveries)
	}
	if len(got.Partners) != 1 {
		t.Errorf("intact partners lost: %+v", got.Partners)
	}
}

func TestDirStore_SaveOverwrites(t *testing.T) {
	store := NewDirStore(t.TempDir())

	store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}, {ID: "p2", Name: "Weber"}})
	store.SavePartners([]Partner{{ID: "p2", Name: "Weber"}})

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Partners) != 1 || got.Partners[0].ID != "p2" {
		t.Errorf("Partners = %+v, want only p2", got.Partners)
	}
}

func TestMemStore_SnapshotsAreIsolated(t *testing.T) {
	store := NewMemStore()
	store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}})

	first, _ := store.Load()
	first.Partners[0].Name = "mutated"

	second, _ := store.Load()
	if second.Partners[0].Name != "Krause" {
		t.Error("mutating a loaded snapshot leaked into the store")
	}
}
