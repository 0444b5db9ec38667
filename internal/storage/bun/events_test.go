package bunrepo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-addtocal/pkg/eventstore"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupSQLiteDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.DriverName(), "file::memory:")
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEventRepositoryBun(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	if err := repo.CreateSchema(ctx); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	start := time.Date(2026, 9, 12, 17, 30, 0, 0, time.UTC)
	active := &EventRecord{
		Title:     "Volunteer orientation",
		Summary:   "Bring a laptop",
		Location:  "Main hall",
		Timezone:  "Europe/Paris",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
		IsActive:  true,
	}
	if err := repo.Create(ctx, active); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive := &EventRecord{Title: "Cancelled", StartDate: start, IsActive: false}
	if err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("create inactive: %v", err)
	}

	evt, err := repo.Event(ctx, strconv.FormatInt(active.ID, 10))
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	if evt.Title != active.Title || evt.Location != "Main hall" || evt.Timezone != "Europe/Paris" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !evt.Start.Equal(start) || !evt.End.Equal(start.Add(2*time.Hour)) {
		t.Fatalf("unexpected times %s - %s", evt.Start, evt.End)
	}

	if _, err := repo.Event(ctx, strconv.FormatInt(inactive.ID, 10)); !errors.Is(err, eventstore.ErrNotFound) {
		t.Fatalf("expected inactive event hidden, got %v", err)
	}
	if _, err := repo.Event(ctx, "not-a-number"); !errors.Is(err, eventstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for bad id, got %v", err)
	}
	if _, err := repo.Event(ctx, "4242"); !errors.Is(err, eventstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing id, got %v", err)
	}
}
