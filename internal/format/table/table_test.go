package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"KEY", "LABEL", "N"},
		{"file", "File", "4"},
		{"file:recent", "Open Recent", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"KEY          LABEL         N",
		"file         File          4",
		"file:recent  Open Recent  12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatMeasuresDisplayWidth(t *testing.T) {
	rows := [][]string{
		{"\x1b[1mbold\x1b[0m", "x"},
		{"wide", "y"},
	}
	got := Format(rows, nil)
	if got[0] != "\x1b[1mbold\x1b[0m  x" || got[1] != "wide  y" {
		t.Fatalf("escape sequences must not count towards width: %q", got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format(nil, nil); got != nil {
		t.Fatalf("expected nil for no rows, got %v", got)
	}
}
