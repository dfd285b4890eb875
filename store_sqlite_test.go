package greenhouse

import (
	"path/filepath"
	"testing"

	"github.com/ogrod/greenhouse/date"
)

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greenhouse.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}

	if err := store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}}); err != nil {
		t.Fatalf("SavePartners: %v", err)
	}
	if err := store.SaveDeliveries([]Delivery{{ID: "d1", Date: date.MustParse("2024-03-01"), Quantity: Q(10)}}); err != nil {
		t.Fatalf("SaveDeliveries: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The data survives a reopen.
	store, err = OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore (reopen): %v", err)
	}
	defer store.Close()

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Partners) != 1 || got.Partners[0].Name != "Krause" {
		t.Errorf("Partners = %+v", got.Partners)
	}
	if len(got.Deliveries) != 1 || !got.Deliveries[0].Quantity.Equal(Q(10)) {
		t.Errorf("Deliveries = %+v", got.Deliveries)
	}
	if len(got.Settlements) != 0 {
		t.Errorf("Settlements = %+v, want empty", got.Settlements)
	}
}

func TestSQLiteStore_EmptyDatabaseLoadsEmpty(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Partners) != 0 || len(got.Deliveries) != 0 || len(got.Settlements) != 0 {
		t.Errorf("Load = %+v, want empty collections", got)
	}
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "greenhouse.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	store.SaveSettlements([]Settlement{
		{ID: "s1", FromDate: date.MustParse("2024-01-01"), AmountPaid: A(10)},
		{ID: "s2", FromDate: date.MustParse("2024-01-08"), AmountPaid: A(20)},
	})
	store.SaveSettlements([]Settlement{
		{ID: "s2", FromDate: date.MustParse("2024-01-08"), AmountPaid: A(25)},
	})

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Settlements) != 1 || got.Settlements[0].ID != "s2" {
		t.Fatalf("Settlements = %+v, want only s2", got.Settlements)
	}
	if !got.Settlements[0].AmountPaid.Equal(A(25)) {
		t.Errorf("AmountPaid = %s, want 25", got.Settlements[0].AmountPaid)
	}
}

func TestSQLiteStore_CorruptBlobLoadsEmpty(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "greenhouse.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	defer store.Close()

	if err := store.writeBlob(Deliveries, []byte("{broken\n")); err != nil {
		t.Fatalf("writeBlob: %v", err)
	}
	store.SavePartners([]Partner{{ID: "p1", Name: "Krause"}})

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load with corrupt blob: %v", err)
	}
	if len(got.Deliveries) != 0 {
		t.Errorf("corrupt deliveries loaded as %+v, want empty", got.Deliveries)
	}
	if len(got.Partners) != 1 {
		t.Errorf("intact partners lost: %+v", got.Partners)
	}
}
