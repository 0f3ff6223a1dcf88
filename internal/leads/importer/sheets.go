package importer

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/platform/apperr"
)

const (
	sheetFetchTimeout = 30 * time.Second
	sheetSizeLimit    = 20 << 20 // 20 MiB
)

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ImportGoogleSheet downloads a publicly shared Google Sheet as CSV and
// imports it. The caller pastes the normal edit URL; the spreadsheet must be
// link-readable.
func (imp *Importer) ImportGoogleSheet(ctx context.Context, caller service.Caller, sheetURL string) (*Result, error) {
	exportURL, err := sheetExportURL(sheetURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, sheetFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not build sheet request", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "could not fetch the Google Sheet", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Validation("the Google Sheet is not accessible; share it with link access")
	}

	data, err := readAllLimited(resp.Body, sheetSizeLimit)
	if err != nil {
		return nil, err
	}

	rows, err := parseCSV(data)
	if err != nil {
		return nil, err
	}
	return imp.importRows(ctx, caller, rows)
}

// sheetExportURL converts a sheet's edit URL into its CSV export URL.
func sheetExportURL(sheetURL string) (string, error) {
	match := spreadsheetIDPattern.FindStringSubmatch(sheetURL)
	if match == nil {
		return "", apperr.Validation("not a valid Google Sheets URL")
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", match[1]), nil
}
