package database

import (
	"path/filepath"
	"testing"

	"github.com/jgoulah/gascalc/pkg/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetReport(t *testing.T) {
	db := openTestDB(t)

	usage := models.Usage{
		2: {Oxygen: 3360},
		1: {Oxygen: 600},
	}
	mode := models.Mode{Fraction: true, NoAmbient: true}

	id, err := db.SaveReport(usage, mode)
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if id == "" {
		t.Fatal("empty report id")
	}

	days, err := db.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	if days[0].Day != 1 || days[0].Oxygen != 600 {
		t.Errorf("days[0] = %+v, want day 1 oxygen 600", days[0])
	}
	if days[1].Day != 2 || days[1].Oxygen != 3360 {
		t.Errorf("days[1] = %+v, want day 2 oxygen 3360", days[1])
	}
	if days[0].Mode != mode {
		t.Errorf("mode = %+v, want %+v", days[0].Mode, mode)
	}
	if days[0].CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestSaveReport_DistinctIDs(t *testing.T) {
	db := openTestDB(t)
	usage := models.Usage{1: {Oxygen: 1}}

	a, err := db.SaveReport(usage, models.Mode{})
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	b, err := db.SaveReport(usage, models.Mode{})
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if a == b {
		t.Errorf("report ids collide: %s", a)
	}

	all, err := db.ListUsage()
	if err != nil {
		t.Fatalf("ListUsage failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d rows, want 2", len(all))
	}
}

func TestSaveReport_Empty(t *testing.T) {
	db := openTestDB(t)
	id, err := db.SaveReport(models.Usage{}, models.Mode{})
	if err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	days, err := db.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if len(days) != 0 {
		t.Errorf("got %d days, want 0", len(days))
	}
}

func TestMarkPublished(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.SaveReport(models.Usage{1: {Oxygen: 10}, 2: {Oxygen: 20}}, models.Mode{}); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	pending, err := db.ListUnpublishedUsage()
	if err != nil {
		t.Fatalf("ListUnpublishedUsage failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d unpublished, want 2", len(pending))
	}

	if err := db.MarkPublished(pending[0].ID); err != nil {
		t.Fatalf("MarkPublished failed: %v", err)
	}

	pending, err = db.ListUnpublishedUsage()
	if err != nil {
		t.Fatalf("ListUnpublishedUsage failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Day != 2 {
		t.Errorf("unpublished = %+v, want only day 2", pending)
	}
}
