package records

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFromCSVKeysRecordsByHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cubes.records")
	defer teardown()

	input := strings.NewReader("customer,year,quantity\nA,2007,10\nB,2007,12\n")
	recs, err := FromCSV(input)
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("record count = %d, want 2", len(recs))
	}
	if recs[0]["customer"] != "A" || recs[0]["quantity"] != "10" {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if recs[1]["year"] != "2007" {
		t.Fatalf("unexpected second record: %v", recs[1])
	}
}

func TestFromCSVEmptyInput(t *testing.T) {
	if _, err := FromCSV(strings.NewReader("")); !errors.Is(err, ErrNoHeader) {
		t.Fatalf("expected ErrNoHeader, got %v", err)
	}
}

func TestFromCSVHeaderOnly(t *testing.T) {
	recs, err := FromCSV(strings.NewReader("customer,year\n"))
	if err != nil {
		t.Fatalf("FromCSV failed: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected no records, got %d", len(recs))
	}
}

func TestFromCSVRejectsRaggedRows(t *testing.T) {
	input := strings.NewReader("customer,year\nA\n")
	if _, err := FromCSV(input); err == nil {
		t.Fatalf("expected an error for a row with missing fields")
	}
}
