package build

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	blobmemory "github.com/LarnoVisser/RoomMaker/internal/infra/blob/memory"
)

func TestReportPublisherPublish(t *testing.T) {
	store := blobmemory.New()
	publisher := NewReportPublisher(store, nil)

	report := NewBuildReport(
		RoomSpec{LengthM: 4, WidthM: 3, HeightM: 2.5},
		RoomBuild{
			LevelID: "level-1",
			WallIDs: []string{"w1", "w2", "w3", "w4"},
			FloorID: "floor-1",
			Length:  13.1233596,
			Width:   9.8425197,
			Height:  8.20209975,
		},
		120*time.Millisecond,
	)

	info, err := publisher.Publish(context.Background(), report)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if info.Key != "reports/room-floor-1.json" {
		t.Fatalf("key = %s", info.Key)
	}
	if info.ContentType != "application/json" {
		t.Fatalf("content type = %s", info.ContentType)
	}
	if info.Metadata["floor_id"] != "floor-1" {
		t.Fatalf("metadata = %v", info.Metadata)
	}

	_, rc, err := store.Get(context.Background(), info.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	payload, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded BuildReport
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.Build.FloorID != "floor-1" || len(decoded.Build.WallIDs) != 4 {
		t.Fatalf("unexpected report %+v", decoded)
	}
	if decoded.Spec.LengthM != 4 {
		t.Fatalf("unexpected spec %+v", decoded.Spec)
	}
}

func TestReportPublisherDuplicateKey(t *testing.T) {
	store := blobmemory.New()
	publisher := NewReportPublisher(store, nil)
	report := NewBuildReport(RoomSpec{LengthM: 1, WidthM: 1, HeightM: 1}, RoomBuild{FloorID: "f"}, time.Millisecond)
	if _, err := publisher.Publish(context.Background(), report); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if _, err := publisher.Publish(context.Background(), report); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}
