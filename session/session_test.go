package session_test

import (
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/aleph"
	"github.com/zephyrtronium/aleph/session"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	ctx := aleph.NewContext()
	for _, src := range []string{"x = 42", "r = 1/3", "f[n_] := n + x"} {
		if _, err := aleph.EvalString(src, ctx); err != nil {
			t.Fatalf("%q failed to evaluate: %v", src, err)
		}
	}
	store, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	store, err = session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	fresh := aleph.NewContext()
	if err := store.Load(fresh); err != nil {
		t.Fatal(err)
	}

	r, err := aleph.EvalString("x", fresh)
	if err != nil {
		t.Fatal(err)
	}
	if !aleph.Equal(r, aleph.Number(42)) {
		t.Errorf("x loaded as %s, want 42", aleph.ToStringRaw(r))
	}
	r, err = aleph.EvalString("r", fresh)
	if err != nil {
		t.Fatal(err)
	}
	if !aleph.Equal(r, aleph.Rational{Num: 1, Den: 3}) {
		t.Errorf("r loaded as %s, want 1/3", aleph.ToStringRaw(r))
	}
	r, err = aleph.EvalString("f[8]", fresh)
	if err != nil {
		t.Fatal(err)
	}
	if !aleph.Equal(r, aleph.Number(50)) {
		t.Errorf("f[8] evaluated to %s, want 50", aleph.ToStringRaw(r))
	}
}

func TestSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := aleph.NewContext()
	ctx.Set("gone", aleph.Number(1))
	ctx.Set("kept", aleph.Number(2))
	if err := store.Save(ctx); err != nil {
		t.Fatal(err)
	}
	ctx.Unset("gone")
	if err := store.Save(ctx); err != nil {
		t.Fatal(err)
	}

	fresh := aleph.NewContext()
	if err := store.Load(fresh); err != nil {
		t.Fatal(err)
	}
	if v, ok := fresh.Get("gone"); ok {
		t.Errorf("removed binding survived a save as %s", aleph.ToStringRaw(v))
	}
	if v, ok := fresh.Get("kept"); !ok || !aleph.Equal(v, aleph.Number(2)) {
		t.Errorf("kept binding loaded as %v, want 2", v)
	}
}
