package export

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"shopcore/internal/blob/memory"
)

type row struct {
	ID    string
	Note  string
	Total float64
}

var rowColumns = []Column[row]{
	{Label: "ID", Accessor: func(r row) any { return r.ID }},
	{Label: "Note", Accessor: func(r row) any { return r.Note }},
	{Label: "Total", Accessor: func(r row) any { return r.Total }},
}

func TestToDelimitedTextQuotesEveryField(t *testing.T) {
	text := ToDelimitedText([]row{
		{ID: "ORD-001", Note: "plain", Total: 155.5},
		{ID: "ORD-002", Note: `said "hi", left`, Total: 10},
	}, rowColumns)

	want := `"ID","Note","Total"` + "\n" +
		`"ORD-001","plain","155.5"` + "\n" +
		`"ORD-002","said ""hi"", left","10"`
	if text != want {
		t.Fatalf("serialized text mismatch:\n got: %q\nwant: %q", text, want)
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatalf("no trailing newline expected")
	}
}

func TestToDelimitedTextHeaderOnly(t *testing.T) {
	text := ToDelimitedText(nil, []Column[row]{{Label: "ID", Accessor: func(r row) any { return r.ID }}})
	if text != `"ID"` {
		t.Fatalf("expected bare header, got %q", text)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{155.50, "155.5"},
		{float64(10), "10"},
		{3, "3"},
		{time.Date(2026, 7, 18, 10, 0, 0, 0, time.UTC), "2026-07-18T10:00:00Z"},
	}
	for _, tc := range cases {
		if got := formatValue(tc.in); got != tc.want {
			t.Fatalf("formatValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFilename(t *testing.T) {
	clock := func() time.Time { return time.Date(2026, time.August, 3, 23, 59, 0, 0, time.UTC) }
	if got := Filename("orders", "csv", clock); got != "orders_2026-08-03.csv" {
		t.Fatalf("filename: %q", got)
	}
	if got := Filename("tax_report", "csv", clock); got != "tax_report_2026-08-03.csv" {
		t.Fatalf("filename: %q", got)
	}
}

func TestWriterWriteCSV(t *testing.T) {
	ctx := context.Background()
	sink := memory.New()
	writer := NewWriter(sink, func() time.Time {
		return time.Date(2026, time.August, 3, 9, 0, 0, 0, time.UTC)
	})

	info, err := writer.WriteCSV(ctx, "orders", `"ID"`+"\n"+`"ORD-001"`)
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if info.Key != "orders_2026-08-03.csv" || info.ContentType != "text/csv" {
		t.Fatalf("artifact info: %+v", info)
	}

	_, body, err := sink.Get(ctx, info.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = body.Close() }()
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != `"ID"`+"\n"+`"ORD-001"` {
		t.Fatalf("stored content: %q", content)
	}
}
