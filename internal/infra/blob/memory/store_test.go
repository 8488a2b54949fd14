package memory

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/LarnoVisser/RoomMaker/internal/infra/blob/core"
)

func TestStorePutGetHeadDeleteList(t *testing.T) {
	store := New()
	ctx := context.Background()
	if store.Driver() != core.DriverMemory {
		t.Fatalf("driver = %s", store.Driver())
	}

	payload := []byte(`{"ok":true}`)
	info, err := store.Put(ctx, "reports/a.json", bytes.NewReader(payload), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"floor_id": "f1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(payload)) {
		t.Fatalf("size = %d", info.Size)
	}
	if _, err := store.Put(ctx, "reports/a.json", bytes.NewReader(payload), core.PutOptions{}); err == nil {
		t.Fatalf("expected immutable put to reject existing key")
	}

	head, err := store.Head(ctx, "reports/a.json")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.ContentType != "application/json" || head.Metadata["floor_id"] != "f1" {
		t.Fatalf("unexpected head %+v", head)
	}

	_, rc, err := store.Get(ctx, "reports/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rc.Close()
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch")
	}

	if _, err := store.Put(ctx, "other/b.json", bytes.NewReader(payload), core.PutOptions{}); err != nil {
		t.Fatalf("put b: %v", err)
	}
	infos, err := store.List(ctx, "reports/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != "reports/a.json" {
		t.Fatalf("unexpected listing %+v", infos)
	}

	deleted, err := store.Delete(ctx, "reports/a.json")
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	deleted, err = store.Delete(ctx, "reports/a.json")
	if err != nil || deleted {
		t.Fatalf("second delete = %v, %v", deleted, err)
	}
	if _, err := store.Head(ctx, "reports/a.json"); err == nil {
		t.Fatalf("expected head of deleted key to fail")
	}
}
