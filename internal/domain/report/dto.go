package report

import (
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/validator"
)

type Scope string

const (
	ScopeAll  Scope = "all"
	ScopeTeam Scope = "team"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ContentType returns the MIME type of files in format f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ========================================
// ATTENDANCE EXPORT
// ========================================

type ExportRequest struct {
	Scope  Scope  `json:"scope"`
	Format Format `json:"format"`
}

// Validate fills in defaults (team scope, csv format) and checks the values.
func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Scope == "" {
		r.Scope = ScopeTeam
	}
	if r.Format == "" {
		r.Format = FormatCSV
	}

	if !validator.IsInSlice(string(r.Scope), []string{string(ScopeAll), string(ScopeTeam)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "scope",
			Message: "scope must be one of: all, team",
		})
	}
	if !validator.IsInSlice(string(r.Format), []string{string(FormatCSV), string(FormatXLSX)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportFile is a rendered attendance export.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
