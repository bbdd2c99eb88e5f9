package domain

import (
	"encoding/json"
	"testing"
)

func TestOrderItemsRoundTripCount(t *testing.T) {
	encoded, err := json.Marshal(ItemCount(3))
	if err != nil {
		t.Fatalf("marshal count variant: %v", err)
	}
	if string(encoded) != "3" {
		t.Fatalf("expected bare number, got %s", encoded)
	}
	var decoded OrderItems
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal count variant: %v", err)
	}
	if decoded.UnitCount() != 3 {
		t.Fatalf("expected unit count 3, got %d", decoded.UnitCount())
	}
	if _, ok := decoded.Lines(); ok {
		t.Fatalf("count variant must not expose lines")
	}
}

func TestOrderItemsRoundTripList(t *testing.T) {
	items := ItemList([]LineItem{
		{ProductID: "PRD-1", Name: "Desk Lamp", Quantity: 2, UnitPrice: 35},
		{ProductID: "PRD-2", Name: "Notebook", Quantity: 1, UnitPrice: 9},
	})
	encoded, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal list variant: %v", err)
	}
	var decoded OrderItems
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal list variant: %v", err)
	}
	if decoded.UnitCount() != 3 {
		t.Fatalf("expected unit count 3, got %d", decoded.UnitCount())
	}
	lines, ok := decoded.Lines()
	if !ok || len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v ok=%v", lines, ok)
	}
	if lines[0].ProductID != "PRD-1" || lines[1].Quantity != 1 {
		t.Fatalf("line content mismatch: %+v", lines)
	}
}

func TestOrderItemsRejectsGarbage(t *testing.T) {
	var decoded OrderItems
	if err := json.Unmarshal([]byte(`"three"`), &decoded); err == nil {
		t.Fatalf("expected error for non-numeric scalar")
	}
	if err := decoded.UnmarshalJSON(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestOrderItemsInsideOrderDocument(t *testing.T) {
	payload := []byte(`{"id":"ORD-9","items":4,"status":"pending"}`)
	var order Order
	if err := json.Unmarshal(payload, &order); err != nil {
		t.Fatalf("unmarshal legacy order: %v", err)
	}
	if order.Items.UnitCount() != 4 {
		t.Fatalf("expected legacy count 4, got %d", order.Items.UnitCount())
	}
}
