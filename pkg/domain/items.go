package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderItems is a tagged variant preserving the two item shapes that coexist
// in persisted order records: a bare unit count, or a structured line item
// list. Neither shape is canonical; callers needing a quantity or a line view
// go through UnitCount and Lines rather than inspecting the payload.
type OrderItems struct {
	count int
	lines []LineItem
	typed bool
}

// ItemCount constructs the bare-count variant.
func ItemCount(n int) OrderItems {
	return OrderItems{count: n}
}

// ItemList constructs the structured variant.
func ItemList(lines []LineItem) OrderItems {
	return OrderItems{lines: append([]LineItem(nil), lines...), typed: true}
}

// UnitCount normalizes both variants to a total unit quantity.
func (i OrderItems) UnitCount() int {
	if !i.typed {
		return i.count
	}
	total := 0
	for _, line := range i.lines {
		total += line.Quantity
	}
	return total
}

// Lines returns the structured line items and whether the variant carries any.
func (i OrderItems) Lines() ([]LineItem, bool) {
	if !i.typed {
		return nil, false
	}
	return append([]LineItem(nil), i.lines...), true
}

// MarshalJSON encodes the variant in its original persisted shape: a JSON
// number for bare counts, a JSON array for line lists.
func (i OrderItems) MarshalJSON() ([]byte, error) {
	if i.typed {
		return json.Marshal(i.lines)
	}
	return json.Marshal(i.count)
}

// UnmarshalJSON accepts either persisted shape.
func (i *OrderItems) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("order items: empty payload")
	}
	if trimmed[0] == '[' {
		var lines []LineItem
		if err := json.Unmarshal(trimmed, &lines); err != nil {
			return fmt.Errorf("order items: %w", err)
		}
		*i = OrderItems{lines: lines, typed: true}
		return nil
	}
	var count int
	if err := json.Unmarshal(trimmed, &count); err != nil {
		return fmt.Errorf("order items: %w", err)
	}
	*i = OrderItems{count: count}
	return nil
}
