package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"dispatch-planner-service/internal/domain"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Column names the location CSV must carry. Order in the file is free;
// rows are read by header position.
var requiredColumns = []string{
	"始点", "終着", "地点", "地点コード", "住所",
	"希望到着", "希望出発",
	"積み込み重量", "積み込み容量", "荷下ろし重量", "荷下ろし容量",
	"備考",
}

const utf8BOM = "\ufeff"

// ReadLocationsCSV parses an uploaded location sheet. The first row is the
// header; a UTF-8 BOM on it is tolerated, and a sheet that is not valid UTF-8
// is retried as Shift_JIS before giving up, since legacy Excel exports still
// arrive in that encoding. Missing required columns fail the whole import with
// the offending names. Numeric cells that do not parse default to zero,
// matching hand-edited spreadsheets.
func ReadLocationsCSV(r io.Reader) ([]domain.Location, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read locations csv: %w", err)
	}
	if !utf8.Valid(raw) {
		decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), japanese.ShiftJIS.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("read locations csv: decode shift_jis: %w", err)
		}
		raw = decoded
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read locations csv: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("read locations csv: 必須列が不足: %s", strings.Join(missing, ", "))
	}

	cell := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	numeric := func(record []string, col string) float64 {
		v, err := strconv.ParseFloat(cell(record, col), 64)
		if err != nil {
			return 0
		}
		return v
	}

	var locations []domain.Location
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read locations csv: %w", err)
		}

		locations = append(locations, domain.Location{
			Name:             cell(record, "地点"),
			Code:             cell(record, "地点コード"),
			Address:          cell(record, "住所"),
			IsStart:          cell(record, "始点") == "1",
			IsEnd:            cell(record, "終着") == "2",
			DesiredArrival:   cell(record, "希望到着"),
			DesiredDeparture: cell(record, "希望出発"),
			LoadWeightKg:     numeric(record, "積み込み重量"),
			LoadVolumeM3:     numeric(record, "積み込み容量"),
			UnloadWeightKg:   numeric(record, "荷下ろし重量"),
			UnloadVolumeM3:   numeric(record, "荷下ろし容量"),
			Remarks:          cell(record, "備考"),
		})
	}

	return locations, nil
}

// Export header, fixed order. English names keep the file friendly to
// downstream spreadsheet tooling.
var exportHeader = []string{
	"Vehicle", "Proposed_Time", "Desired_Time", "Time_Difference",
	"Status", "Location_ID", "Location_Code", "Location_Name",
	"Address", "Remarks",
}

// WriteItineraryCSV writes plan events as UTF-8 CSV with a BOM so that Excel
// renders the Japanese cells correctly.
func WriteItineraryCSV(w io.Writer, events []domain.PlanEvent) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write itinerary csv: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write itinerary csv: %w", err)
	}
	for _, ev := range events {
		record := []string{
			ev.Vehicle,
			ev.ProposedTime,
			ev.DesiredTime,
			ev.TimeDifference,
			ev.StatusLabel,
			ev.LocationID,
			ev.LocationCode,
			ev.LocationName,
			ev.Address,
			ev.Remarks,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write itinerary csv: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write itinerary csv: %w", err)
	}
	return nil
}
