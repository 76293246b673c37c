package catalog

import (
	"testing"
)

func TestFindVariant(t *testing.T) {
	p := &Product{
		Variants: VariantList{
			{Name: "Crna", Price: 1300},
			{Name: "Bela", Price: 1250},
		},
	}

	if v := p.FindVariant("Bela"); v == nil || v.Price != 1250 {
		t.Errorf("expected Bela variant at 1250, got %+v", v)
	}
	if v := p.FindVariant("Zelena"); v != nil {
		t.Errorf("expected nil for unknown variant, got %+v", v)
	}
	if v := p.FindVariant(""); v != nil {
		t.Errorf("expected nil for empty name, got %+v", v)
	}
}

func TestVariantListScanRoundTrip(t *testing.T) {
	list := VariantList{{Name: "Crna", Price: 1300}}

	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var restored VariantList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(restored) != 1 || restored[0].Name != "Crna" || restored[0].Price != 1300 {
		t.Errorf("round trip diverged: %+v", restored)
	}
}

func TestVariantListScanNil(t *testing.T) {
	var list VariantList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list from nil, got %+v", list)
	}
}

func TestStringListScanBytes(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(list) != 2 || list[1] != "b" {
		t.Errorf("unexpected list: %+v", list)
	}
}
