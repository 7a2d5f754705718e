package contracts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateMarshalsVersions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	contract := Contract{
		ID:      "contract-1",
		EventID: "event-1",
		Title:   "Venue Agreement",
		Status:  StatusDraft,
		Versions: []Version{
			{VersionNumber: 1, FilePath: "/uploads/contracts/x-venue.pdf", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO contracts").
		WithArgs(
			contract.ID,
			contract.EventID,
			contract.Title,
			contract.Status,
			sqlmock.AnyArg(), // versions jsonb
			contract.CreatedAt,
			contract.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), contract); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansVersions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	versionsJSON := `[{"versionNumber":1,"filePath":"/uploads/contracts/x-venue.pdf","createdAt":"2026-01-02T03:04:05Z"}]`

	rows := sqlmock.NewRows([]string{"id", "event_id", "title", "status", "versions", "created_at", "updated_at"}).
		AddRow("contract-1", "event-1", "Venue Agreement", StatusDraft, []byte(versionsJSON), now, now)

	mock.ExpectQuery("SELECT (.+) FROM contracts").
		WithArgs("contract-1").
		WillReturnRows(rows)

	contract, err := repo.GetByID(context.Background(), "contract-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if contract.Title != "Venue Agreement" {
		t.Fatalf("title = %q", contract.Title)
	}
	if len(contract.Versions) != 1 || contract.Versions[0].FilePath != "/uploads/contracts/x-venue.pdf" {
		t.Fatalf("versions = %+v", contract.Versions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM contracts").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "title", "status", "versions", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateNoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE contracts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	contract := Contract{ID: "missing", Status: StatusFinal, UpdatedAt: time.Now().UTC()}
	if err := repo.Update(context.Background(), contract); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
