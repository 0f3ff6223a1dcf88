package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	existing map[string]struct{}
	created  []*domain.Lead
	failWith error
}

func (f *fakeStore) Create(_ context.Context, lead *domain.Lead) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.created = append(f.created, lead)
	return nil
}

func (f *fakeStore) ExistingPhones(_ context.Context) (map[string]struct{}, error) {
	if f.existing == nil {
		return map[string]struct{}{}, nil
	}
	return f.existing, nil
}

type fakeRoster struct {
	users []service.UserRef
}

func (f *fakeRoster) ListAssignable(_ context.Context) ([]service.UserRef, error) {
	return f.users, nil
}

type fakeDir struct {
	users map[uuid.UUID]*service.UserRef
}

func (f *fakeDir) FindUser(_ context.Context, id uuid.UUID) (*service.UserRef, error) {
	return f.users[id], nil
}

func newImporter(store *fakeStore, roster *fakeRoster, dir *fakeDir) *Importer {
	return New(store, roster, dir, nil, logger.New("development"))
}

func adminCaller() service.Caller {
	return service.Caller{ID: uuid.New(), Role: domain.RoleAdmin}
}

func TestImportSkipsDuplicateWithinBatch(t *testing.T) {
	store := &fakeStore{}
	imp := newImporter(store, &fakeRoster{}, &fakeDir{})

	csvData := strings.Join([]string{
		"Name,Phone",
		"First Lead,9876543210",
		"Second Lead,(987) 654-3210",
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), adminCaller(), "leads.csv", []byte(csvData))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("inserted = %d, want 1", result.Inserted)
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Row != 3 {
		t.Fatalf("skipped = %+v, want row 3", result.Skipped)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d leads, want 1", len(store.created))
	}
}

func TestImportSkipsKnownPhones(t *testing.T) {
	store := &fakeStore{existing: map[string]struct{}{"9876543210": {}}}
	imp := newImporter(store, &fakeRoster{}, &fakeDir{})

	csvData := "Name,Phone\nKnown Lead,98765-43210\n"
	result, err := imp.ImportCSV(context.Background(), adminCaller(), "leads.csv", []byte(csvData))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Inserted != 0 || len(result.Skipped) != 1 {
		t.Fatalf("result = %+v, want one skip", result)
	}
}

func TestImportSkipsInvalidRows(t *testing.T) {
	store := &fakeStore{}
	imp := newImporter(store, &fakeRoster{}, &fakeDir{})

	csvData := strings.Join([]string{
		"Name,Phone",
		",9876543210",
		"Short Phone,12345",
		"Good Lead,9123456780",
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), adminCaller(), "leads.csv", []byte(csvData))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Inserted != 1 || len(result.Skipped) != 2 {
		t.Fatalf("result = %+v, want 1 insert and 2 skips", result)
	}
	if result.TotalParsed != 3 {
		t.Fatalf("totalParsed = %d, want 3", result.TotalParsed)
	}
}

func TestImportConflictSkipsRowNotBatch(t *testing.T) {
	store := &fakeStore{failWith: apperr.Conflict("duplicate")}
	imp := newImporter(store, &fakeRoster{}, &fakeDir{})

	csvData := "Name,Phone\nRacing Lead,9876543210\n"
	result, err := imp.ImportCSV(context.Background(), adminCaller(), "leads.csv", []byte(csvData))
	if err != nil {
		t.Fatalf("a conflict must not fail the batch: %v", err)
	}
	if result.Inserted != 0 || len(result.Skipped) != 1 {
		t.Fatalf("result = %+v, want the row skipped", result)
	}
}

func TestImportMatchesAssignedToByNameAndEmail(t *testing.T) {
	teamID := uuid.New()
	rm := service.UserRef{
		ID:       uuid.New(),
		FullName: "Asha Patel",
		Email:    "asha@example.com",
		Role:     domain.RoleRelationshipManager,
		TeamID:   &teamID,
		Active:   true,
	}
	inactive := service.UserRef{
		ID:       uuid.New(),
		FullName: "Gone User",
		Role:     domain.RoleRelationshipManager,
		Active:   false,
	}
	store := &fakeStore{}
	dir := &fakeDir{users: map[uuid.UUID]*service.UserRef{rm.ID: &rm}}
	imp := newImporter(store, &fakeRoster{users: []service.UserRef{rm, inactive}}, dir)

	csvData := strings.Join([]string{
		"Name,Phone,Assigned To",
		"By Name,9876543210,asha patel",
		"By Email,9123456780,ASHA@EXAMPLE.COM",
		"Inactive RM,9988776655,gone user",
	}, "\n")

	result, err := imp.ImportCSV(context.Background(), adminCaller(), "leads.csv", []byte(csvData))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Inserted != 3 {
		t.Fatalf("inserted = %d, want 3", result.Inserted)
	}

	for _, i := range []int{0, 1} {
		lead := store.created[i]
		if lead.AssignedTo == nil || *lead.AssignedTo != rm.ID {
			t.Fatalf("lead %d assigned_to = %v, want %v", i, lead.AssignedTo, rm.ID)
		}
		if lead.TeamID == nil || *lead.TeamID != teamID {
			t.Fatalf("lead %d team_id = %v, want rm's team", i, lead.TeamID)
		}
	}
	// Inactive users never appear in the roster index; the admin caller
	// leaves the row unassigned.
	if store.created[2].AssignedTo != nil {
		t.Fatalf("row naming an inactive user should stay unassigned, got %v", store.created[2].AssignedTo)
	}
}

func TestSheetExportURL(t *testing.T) {
	url := "https://docs.google.com/spreadsheets/d/1AbC_dEf-123/edit#gid=0"
	got, err := sheetExportURL(url)
	if err != nil {
		t.Fatalf("sheetExportURL failed: %v", err)
	}
	want := "https://docs.google.com/spreadsheets/d/1AbC_dEf-123/export?format=csv"
	if got != want {
		t.Fatalf("export url = %q, want %q", got, want)
	}

	if _, err := sheetExportURL("https://example.com/not-a-sheet"); err == nil {
		t.Fatal("non-sheet URL should be rejected")
	}
}
