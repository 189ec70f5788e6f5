package models

import "testing"

func TestStringListRoundTripThroughDriver(t *testing.T) {
	list := StringList{"jazz", "folk"}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(value); err != nil {
		t.Fatalf("expected scan to succeed, got %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "jazz" || scanned[1] != "folk" {
		t.Fatalf("unexpected scanned list %v", scanned)
	}
}

func TestStringListEmptyValues(t *testing.T) {
	value, err := StringList{}.Value()
	if err != nil || value != nil {
		t.Fatalf("expected nil value for empty list, got %v (%v)", value, err)
	}

	var scanned StringList
	if err := scanned.Scan(nil); err != nil {
		t.Fatalf("expected nil scan to succeed, got %v", err)
	}
	if scanned == nil || len(scanned) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", scanned)
	}

	if err := scanned.Scan(42); err == nil {
		t.Fatalf("expected error when scanning unsupported type")
	}
}
