package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	pq "github.com/lib/pq"

	"github.com/investimentigrugno/fluxxo/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*scanRunRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &scanRunRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

var insertRegex = regexp.QuoteMeta(`INSERT INTO scan_runs (id, request_id, filter_type, row_count, duration_ms, status)`)

func TestRecord_SQLMock(t *testing.T) {
	cases := []struct {
		name    string
		run     models.ScanRun
		execErr error
		wantErr bool
	}{
		{
			name: "explicit id",
			run:  models.ScanRun{ID: "0b6c6f0e-4b52-4a44-a8a4-0a2f8c1f7f11", RequestID: "rid", FilterType: "top_score", RowCount: 3, DurationMS: 120, Status: models.ScanStatusOK},
		},
		{
			name: "generated id",
			run:  models.ScanRun{RequestID: "rid", FilterType: "all", Status: models.ScanStatusError},
		},
		{
			name:    "db error",
			run:     models.ScanRun{ID: "x"},
			execErr: dummyErr{},
			wantErr: true,
		},
		{
			name:    "pq error keeps code",
			run:     models.ScanRun{ID: "x"},
			execErr: &pq.Error{Code: "42P01", Message: "relation \"scan_runs\" does not exist"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			exp := mock.ExpectExec(insertRegex)
			if tc.run.ID != "" {
				exp = exp.WithArgs(tc.run.ID, tc.run.RequestID, tc.run.FilterType, tc.run.RowCount, tc.run.DurationMS, tc.run.Status)
			} else {
				exp = exp.WithArgs(sqlmock.AnyArg(), tc.run.RequestID, tc.run.FilterType, tc.run.RowCount, tc.run.DurationMS, tc.run.Status)
			}
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Record(context.Background(), tc.run)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v, wantErr=%v", err, tc.wantErr)
			}
			if tc.name == "pq error keeps code" && !regexp.MustCompile(`code 42P01`).MatchString(err.Error()) {
				t.Fatalf("error should carry the pq code: %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestRecent_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "request_id", "filter_type", "row_count", "duration_ms", "status", "created_at"}).
		AddRow("a", "r1", "all", 5, int64(300), "ok", now).
		AddRow("b", "r2", "value", 0, int64(80), "error", now.Add(-time.Minute))
	mock.ExpectQuery(`SELECT id, request_id, filter_type`).WithArgs(2).WillReturnRows(rows)

	runs, err := repo.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "a" || runs[1].Status != "error" || !runs[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestRecent_Empty(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	mock.ExpectQuery(`SELECT id, request_id, filter_type`).WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "filter_type", "row_count", "duration_ms", "status", "created_at"}))

	runs, err := repo.Recent(context.Background(), 20)
	if err != nil || runs == nil || len(runs) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v err=%v", runs, err)
	}
}

func TestRecent_QueryError(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	mock.ExpectQuery(`SELECT id, request_id, filter_type`).WillReturnError(dummyErr{})
	if _, err := repo.Recent(context.Background(), 5); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNopRepository(t *testing.T) {
	var repo ScanRunRepository = NopRepository{}
	if err := repo.Record(context.Background(), models.ScanRun{}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := repo.Recent(context.Background(), 1); !errors.Is(err, ErrDisabled) {
		t.Fatalf("err=%v, want ErrDisabled", err)
	}
}

func TestNewScanRunRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	if NewScanRunRepository(db) == nil {
		t.Fatalf("nil repository")
	}
}
