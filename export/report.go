package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// FileReport describes the export of one table.
type FileReport struct {
	Table           string        `json:"table"`
	Memo            string        `json:"memo,omitempty"`
	MemoFormat      string        `json:"memo_format,omitempty"`
	CodePage        byte          `json:"code_page"`
	Columns         int           `json:"columns"`
	ActiveRows      int           `json:"active_rows"`
	DeletedRows     int           `json:"deleted_rows"`
	ActiveFile      string        `json:"active_file,omitempty"`
	DeletedFile     string        `json:"deleted_file,omitempty"`
	ActiveChecksum  string        `json:"active_xxhash,omitempty"`
	DeletedChecksum string        `json:"deleted_xxhash,omitempty"`
	Duration        time.Duration `json:"duration_ns"`
	Error           string        `json:"error,omitempty"`
}

// Failed reports if the export of the table failed
func (f *FileReport) Failed() bool {
	return f.Error != ""
}

// Report describes a batch run, files are in the order they were given.
type Report struct {
	RunID    uuid.UUID     `json:"run_id"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Files    []*FileReport `json:"files"`
}

// NewReport returns an empty report with a new run id
func NewReport() *Report {
	return &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
		Files:   make([]*FileReport, 0),
	}
}

// Failures returns the reports of all failed tables
func (r *Report) Failures() []*FileReport {
	failures := make([]*FileReport, 0)
	for _, file := range r.Files {
		if file.Failed() {
			failures = append(failures, file)
		}
	}
	return failures
}

// Totals returns the number of active and deleted rows of all tables
func (r *Report) Totals() (active int, deleted int) {
	for _, file := range r.Files {
		active += file.ActiveRows
		deleted += file.DeletedRows
	}
	return active, deleted
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// Save writes the report as JSON to path
func (r *Report) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
