package storage_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ipfs/go-cid"

	"xdao.co/stegpng/cidutil"
	"xdao.co/stegpng/storage"
	"xdao.co/stegpng/storage/localfs"
	"xdao.co/stegpng/storage/testkit"
)

func newBackend(t *testing.T) *localfs.CAS {
	t.Helper()
	cas, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	return cas
}

func TestReplicatingCASConformance(t *testing.T) {
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		return storage.ReplicatingCAS{Backends: []storage.NamedCAS{
			{Name: "a", CAS: newBackend(t)},
			{Name: "b", CAS: newBackend(t)},
		}}
	})
}

func TestReplicatingCASPutAllWritesEverywhere(t *testing.T) {
	a := newBackend(t)
	b := newBackend(t)
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{
		{Name: "a", CAS: a},
		{Name: "b", CAS: b},
	}}

	payload := []byte("replicate me")
	id, perBackend, err := r.PutAll(payload)
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if len(perBackend) != 2 {
		t.Fatalf("len(perBackend) = %d, want 2", len(perBackend))
	}
	for name, got := range perBackend {
		if got != id {
			t.Errorf("backend %s CID = %s, want %s", name, got, id)
		}
	}
	if !a.Has(id) || !b.Has(id) {
		t.Error("payload missing from a backend after PutAll")
	}
}

func TestReplicatingCASGetFallsBack(t *testing.T) {
	a := newBackend(t)
	b := newBackend(t)
	r := storage.ReplicatingCAS{Backends: []storage.NamedCAS{
		{Name: "a", CAS: a},
		{Name: "b", CAS: b},
	}}

	// Write to the second backend only; reads must fall through the first.
	payload := []byte("only in b")
	id, err := b.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("payload mismatch")
	}
	if !r.Has(id) {
		t.Fatal("Has must consult every backend")
	}
}

func TestReplicatingCASNoBackends(t *testing.T) {
	r := storage.ReplicatingCAS{}
	if _, err := r.Put([]byte("anything")); err == nil {
		t.Fatal("expected error with no backends")
	}
	id, err := cidutil.CIDv1RawSHA256CID([]byte("anything"))
	if err != nil {
		t.Fatalf("cid: %v", err)
	}
	if _, err := r.Get(id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get err = %v, want ErrNotFound", err)
	}
	if r.Has(cid.Undef) {
		t.Fatal("Has must be false with no backends")
	}
}
