// Package importer ingests leads in bulk from CSV and XLSX files and from
// Google Sheets. Rows run through the same assignment rules as single
// creates; invalid or duplicate rows are skipped, never the whole batch.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/domain"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"
	"github.com/Iamalive23802/Dream-Trade/platform/phone"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Store is the persistence slice the importer needs.
type Store interface {
	Create(ctx context.Context, lead *domain.Lead) error
	ExistingPhones(ctx context.Context) (map[string]struct{}, error)
}

// Roster lists the users a spreadsheet row may name in its "Assigned to"
// column.
type Roster interface {
	ListAssignable(ctx context.Context) ([]service.UserRef, error)
}

// Archiver stores the raw uploaded file for later reference.
type Archiver interface {
	Archive(ctx context.Context, filename string, contentType string, data []byte) error
}

// Row is one spreadsheet row after header mapping.
type Row struct {
	Number         int
	FullName       string
	Phone          string
	AltNumber      string
	Email          string
	StateName      string
	Language       string
	Status         string
	Tags           string
	AssignedToName string
}

// SkippedRow records why a row was not imported.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result summarizes an import batch.
type Result struct {
	TotalParsed int          `json:"totalParsed"`
	Inserted    int          `json:"validInserted"`
	Skipped     []SkippedRow `json:"skipped"`
}

// Importer runs bulk imports.
type Importer struct {
	store   Store
	roster  Roster
	dir     service.UserDirectory
	archive Archiver
	log     *logger.Logger
	now     func() time.Time
}

// New creates an importer. archive may be nil when no object storage is
// configured.
func New(store Store, roster Roster, dir service.UserDirectory, archive Archiver, log *logger.Logger) *Importer {
	return &Importer{
		store:   store,
		roster:  roster,
		dir:     dir,
		archive: archive,
		log:     log,
		now:     time.Now,
	}
}

// ImportCSV ingests a CSV file.
func (imp *Importer) ImportCSV(ctx context.Context, caller service.Caller, filename string, data []byte) (*Result, error) {
	rows, err := parseCSV(data)
	if err != nil {
		return nil, err
	}
	imp.archiveFile(ctx, filename, "text/csv", data)
	return imp.importRows(ctx, caller, rows)
}

// ImportXLSX ingests the first sheet of an XLSX workbook.
func (imp *Importer) ImportXLSX(ctx context.Context, caller service.Caller, filename string, data []byte) (*Result, error) {
	rows, err := parseXLSX(data)
	if err != nil {
		return nil, err
	}
	imp.archiveFile(ctx, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	return imp.importRows(ctx, caller, rows)
}

func (imp *Importer) archiveFile(ctx context.Context, filename, contentType string, data []byte) {
	if imp.archive == nil {
		return
	}
	if err := imp.archive.Archive(ctx, filename, contentType, data); err != nil {
		// Archival is best effort; the import itself proceeds.
		imp.log.Warn("import file archival failed", "filename", filename, "error", err.Error())
	}
}

// importRows applies per-row validation, duplicate skipping and the create
// assignment rules, then inserts row by row. A uniqueness violation on
// insert skips that row; the unique index is the backstop for the known
// concurrent-import race.
func (imp *Importer) importRows(ctx context.Context, caller service.Caller, rows []Row) (*Result, error) {
	existing, err := imp.store.ExistingPhones(ctx)
	if err != nil {
		return nil, err
	}

	assignable, err := imp.roster.ListAssignable(ctx)
	if err != nil {
		return nil, err
	}
	byName := indexAssignable(assignable)

	seen := make(map[string]struct{})
	result := &Result{TotalParsed: len(rows)}

	for _, row := range rows {
		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedRow{Row: row.Number, Reason: reason})
		}

		if strings.TrimSpace(row.FullName) == "" {
			skip("missing name")
			continue
		}
		normalized := phone.Normalize(row.Phone)
		if !phone.IsValid(normalized) {
			skip("phone must contain exactly 10 digits")
			continue
		}
		if _, dup := existing[normalized]; dup {
			skip("phone already exists")
			continue
		}
		if _, dup := seen[normalized]; dup {
			skip("duplicate phone within file")
			continue
		}
		seen[normalized] = struct{}{}

		requested := service.RequestedAssignment{}
		if target, ok := byName[normalizeKey(row.AssignedToName)]; ok {
			id := target
			requested.AssignedTo = &id
		}

		now := imp.now()
		assignment, err := service.ResolveCreateAssignment(ctx, imp.dir, requested, caller, now)
		if err != nil {
			return nil, err
		}

		status := row.Status
		if !domain.IsKnownStatus(status) {
			status = domain.StatusNew
		}

		date := now
		lead := &domain.Lead{
			ID:         uuid.New(),
			Date:       &date,
			FullName:   strings.TrimSpace(row.FullName),
			Phone:      normalized,
			AltNumber:  phone.Normalize(row.AltNumber),
			Email:      strings.TrimSpace(row.Email),
			StateName:  strings.TrimSpace(row.StateName),
			Language:   strings.TrimSpace(row.Language),
			Status:     status,
			Tags:       strings.TrimSpace(row.Tags),
			TeamID:     assignment.TeamID,
			AssignedTo: assignment.AssignedTo,
			AssignedAt: assignment.AssignedAt,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := imp.store.Create(ctx, lead); err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				skip("phone already exists")
				continue
			}
			return nil, err
		}
		result.Inserted++
	}

	return result, nil
}

// indexAssignable keys active frontline users by lowercased full name and
// email so either may appear in the spreadsheet.
func indexAssignable(users []service.UserRef) map[string]uuid.UUID {
	index := make(map[string]uuid.UUID)
	for _, user := range users {
		if !user.Active || !domain.IsFrontlineRole(user.Role) {
			continue
		}
		if key := normalizeKey(user.FullName); key != "" {
			index[key] = user.ID
		}
		if key := normalizeKey(user.Email); key != "" {
			index[key] = user.ID
		}
	}
	return index
}

func normalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func parseCSV(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not parse CSV file", err)
	}
	return mapRecords(records), nil
}

func parseXLSX(data []byte) ([]Row, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not parse XLSX file", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("workbook has no sheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not read XLSX rows", err)
	}
	return mapRecords(records), nil
}

// mapRecords turns raw rows into Rows using the header line. Header names
// are matched loosely; spreadsheets in the wild disagree on capitalization
// and spacing.
func mapRecords(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}

	columns := make(map[string]int)
	for i, header := range records[0] {
		columns[canonicalHeader(header)] = i
	}

	get := func(record []string, name string) string {
		index, ok := columns[name]
		if !ok || index >= len(record) {
			return ""
		}
		return record[index]
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		rows = append(rows, Row{
			Number:         i + 2, // 1-based, after the header line
			FullName:       get(record, "fullname"),
			Phone:          get(record, "phone"),
			AltNumber:      get(record, "altnumber"),
			Email:          get(record, "email"),
			StateName:      get(record, "state"),
			Language:       get(record, "language"),
			Status:         get(record, "status"),
			Tags:           get(record, "tags"),
			AssignedToName: get(record, "assignedto"),
		})
	}
	return rows
}

// canonicalHeader collapses the header variants seen in real files onto the
// keys mapRecords reads.
func canonicalHeader(header string) string {
	key := strings.ToLower(strings.TrimSpace(header))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "_", "")

	switch key {
	case "name", "fullname", "leadname", "clientname":
		return "fullname"
	case "phone", "phonenumber", "mobile", "mobilenumber", "contact", "contactnumber":
		return "phone"
	case "altnumber", "alternatenumber", "altphone":
		return "altnumber"
	case "email", "emailaddress":
		return "email"
	case "state", "statename":
		return "state"
	case "language", "lang":
		return "language"
	case "status", "leadstatus":
		return "status"
	case "tags", "tag":
		return "tags"
	case "assignedto", "assigned", "rm", "rmname", "owner":
		return "assignedto"
	default:
		return key
	}
}

// readAllLimited guards against unbounded uploads when reading from a
// network body.
func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, apperr.Validation(fmt.Sprintf("file exceeds the %d byte limit", limit))
	}
	return data, nil
}
