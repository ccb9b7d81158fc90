package script

import (
	"testing"
)

func TestDefaultsInstallStockBindings(t *testing.T) {
	in, _ := newTestInterp(t)
	if err := in.Defaults(); err != nil {
		t.Fatal(err)
	}
	s := in.Session()
	if s.Bindings.Len() == 0 {
		t.Fatal("no stock bindings installed")
	}
	cmd, ok := s.KeyDown("u")
	if !ok || cmd != ":undo" {
		t.Fatalf("KeyDown(u) = %q, %v; want :undo", cmd, ok)
	}
	v, _ := s.Settings.Get("grid/spacing")
	if v.String() != "8 8" {
		t.Errorf("grid/spacing = %s, want 8 8", v)
	}
}

func TestMapClearRemovesStockBindings(t *testing.T) {
	in, _ := newTestInterp(t)
	if err := in.Defaults(); err != nil {
		t.Fatal(err)
	}
	if in.Session().Bindings.Len() == 0 {
		t.Fatal("no stock bindings to clear")
	}
	mustRun(t, in, "map/clear!")
	if n := in.Session().Bindings.Len(); n != 0 {
		t.Errorf("bindings after map/clear! = %d, want 0", n)
	}
	if _, ok := in.Session().KeyDown("u"); ok {
		t.Error("binding for u survived map/clear!")
	}
}
