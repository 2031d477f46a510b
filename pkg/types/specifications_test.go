package types

import "testing"

func TestSpecificationsRoundTrip(t *testing.T) {
	specs := Specifications{"voltage": "220V", "ip_rating": "65"}

	val, err := specs.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var decoded Specifications
	if err := decoded.Scan(val); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if decoded["voltage"] != "220V" || decoded["ip_rating"] != "65" {
		t.Fatalf("unexpected decoded map %v", decoded)
	}
}

func TestSpecificationsNilValue(t *testing.T) {
	var specs Specifications
	val, err := specs.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if val != "{}" {
		t.Fatalf("nil map should serialize as empty object, got %v", val)
	}

	var decoded Specifications
	if err := decoded.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if decoded != nil {
		t.Fatalf("expected nil map after scanning NULL")
	}
}

func TestSpecificationsScanRejectsUnknownType(t *testing.T) {
	var decoded Specifications
	if err := decoded.Scan(42); err == nil {
		t.Fatal("expected error for unsupported scan type")
	}
}
