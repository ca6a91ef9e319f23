package xlsxdata

import (
	"reflect"
	"testing"

	"github.com/quantpress/deskstat/pkg/deskstat/similarity"
)

func TestSplitCodes(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"1000; 2002", []string{"1000", "2002"}},
		{"1000;2002;", []string{"1000", "2002"}},
		{"1000", []string{"1000"}},
		{"", nil},
		{" ; ", nil},
	}
	for _, tt := range tests {
		if got := SplitCodes(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitCodes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCounterFromClassification(t *testing.T) {
	c := &Classification{
		Fields: []similarity.Field{
			{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"},
		},
		Assignments: []Assignment{
			{JournalID: "1", FieldID: "A"},
			{JournalID: "2", FieldID: "A"},
			{JournalID: "2", FieldID: "B"},
			{JournalID: "3", FieldID: "B"},
			{JournalID: "3", FieldID: "C"},
		},
	}

	counter := c.Counter()
	if counter.SharedCount("A", "B") != 1 {
		t.Errorf("SharedCount(A,B) = %d", counter.SharedCount("A", "B"))
	}
	// D registered but journal-less: it must still appear in the matrix.
	m := counter.Matrix()
	if len(m) != 6 {
		t.Errorf("want 6 pairs for 4 fields, got %d", len(m))
	}
}
