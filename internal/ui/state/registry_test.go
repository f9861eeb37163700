package state

import (
	"reflect"
	"testing"
)

func TestRegistryKeepsDisabledInFlatOrderOnly(t *testing.T) {
	b := NewRegistryBuilder[fakeHandle]()
	for _, h := range handles("A", "!B", "C") {
		b.Register(h)
	}
	reg := b.Build()

	flat := reg.Flat()
	if len(flat) != 3 || flat[1].key != "B" {
		t.Fatalf("expected disabled B in flat order, got %v", flat)
	}
	if _, ok := reg.Lookup("B"); ok {
		t.Fatal("disabled handle must not get a lookup slot")
	}
	if h, ok := reg.Lookup("C"); !ok || h.key != "C" {
		t.Fatalf("expected lookup of C, got %v %v", h, ok)
	}
	if reg.Len() != 3 {
		t.Fatalf("expected len 3, got %d", reg.Len())
	}
}

func TestRegistryReportsDuplicateKeys(t *testing.T) {
	b := NewRegistryBuilder[fakeHandle]()
	b.Register(fakeHandle{key: "A"})
	b.Register(fakeHandle{key: "B"})
	b.Register(fakeHandle{key: "A"})
	reg := b.Build()

	if got := reg.Duplicates(); !reflect.DeepEqual(got, []string{"A"}) {
		t.Fatalf("expected duplicate A, got %v", got)
	}
	flat := reg.Flat()
	h, _ := reg.Lookup("A")
	if h != flat[2] {
		t.Fatal("expected last registration to own the lookup slot")
	}
}

func TestRegistrySnapshotIsImmutable(t *testing.T) {
	b := NewRegistryBuilder[fakeHandle]()
	b.Register(fakeHandle{key: "A"})
	reg := b.Build()
	flat := reg.Flat()
	flat[0] = fakeHandle{key: "Z"}
	if reg.Flat()[0].key != "A" {
		t.Fatal("expected Flat to return a copy")
	}

	var nilReg *Registry[fakeHandle]
	if nilReg.Len() != 0 || nilReg.Flat() != nil {
		t.Fatal("nil registry should be empty")
	}
}
