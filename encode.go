package greenhouse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// encodeRecords writes each record as a single JSON object per line (JSONL).
func encodeRecords[T any](w io.Writer, records []T) error {
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not encode record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// decodeRecords reads one JSON object per line, skipping empty lines.
func decodeRecords[T any](r io.Reader) ([]T, error) {
	var records []T
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var record T
		if err := json.Unmarshal(lineBytes, &record); err != nil {
			return nil, fmt.Errorf("could not decode line %q: %w", string(lineBytes), err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// EncodePartners encodes partners as JSONL to w.
func EncodePartners(w io.Writer, partners []Partner) error { return encodeRecords(w, partners) }

// DecodePartners decodes a JSONL stream of partners from r.
func DecodePartners(r io.Reader) ([]Partner, error) { return decodeRecords[Partner](r) }

// EncodeDeliveries encodes deliveries as JSONL to w.
func EncodeDeliveries(w io.Writer, deliveries []Delivery) error { return encodeRecords(w, deliveries) }

// DecodeDeliveries decodes a JSONL stream of deliveries from r.
func DecodeDeliveries(r io.Reader) ([]Delivery, error) { return decodeRecords[Delivery](r) }

// EncodeSettlements encodes settlements as JSONL to w.
func EncodeSettlements(w io.Writer, settlements []Settlement) error {
	return encodeRecords(w, settlements)
}

// DecodeSettlements decodes a JSONL stream of settlements from r.
func DecodeSettlements(r io.Reader) ([]Settlement, error) { return decodeRecords[Settlement](r) }
