/*
docgen.go - Document catalogue and generation entry point

PURPOSE:
  The system pre-fills six legal/HR documents from a case record plus
  optional operator-supplied detail (medical, doctor and incident
  fields). Each document first assembles a flat field dictionary with
  provenance tags (see field.go), then lays it out as a PDF.

DOCUMENTS:
  letter_to_worker    Letter advising worker about RTW Arrangements
  rtw_information     Important Return to Work Information
  register_of_injury  Register of Injury and Investigation form
  letter_to_doctor    Letter to treating practitioner re RTW
  rtw_arrangement     RTW Arrangement with proposed suitable duties
  rtw_plan            RTW Plan with 4-week progressive schedule

SEE ALSO:
  - letters.go, register.go, rtwdocs.go: the individual builders
*/
package docgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/sga/workcover-engine/claims"
)

// DocType identifies a generatable document.
type DocType string

const (
	DocLetterToWorker   DocType = "letter_to_worker"
	DocRTWInformation   DocType = "rtw_information"
	DocRegisterOfInjury DocType = "register_of_injury"
	DocLetterToDoctor   DocType = "letter_to_doctor"
	DocRTWArrangement   DocType = "rtw_arrangement"
	DocRTWPlan          DocType = "rtw_plan"
)

// DocInfo describes a catalogue entry.
type DocInfo struct {
	Type        DocType `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	NeedsReview string  `json:"needs_review"`
}

var catalogue = []DocInfo{
	{DocLetterToWorker, "Letter to Worker", "Letter advising worker about Return to Work Arrangements", "Minimal"},
	{DocRTWInformation, "RTW Information", "Important Return to Work Information (state-specific)", "No"},
	{DocRegisterOfInjury, "Register of Injury & Investigation", "Full register including investigation, recommendations and action plan", "Yes - investigation sections need manual completion"},
	{DocLetterToDoctor, "Letter to Doctor", "Letter to treating practitioner regarding RTW arrangements", "Minimal"},
	{DocRTWArrangement, "RTW Arrangement", "Return to Work Arrangement with proposed suitable duties", "Yes - review proposed duties"},
	{DocRTWPlan, "RTW Plan", "Return to Work Plan with 4-week progressive schedule", "Yes - review schedule and duties"},
}

// Catalogue lists the available document types in display order.
func Catalogue() []DocInfo {
	out := make([]DocInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// Info looks up a catalogue entry.
func Info(t DocType) (DocInfo, bool) {
	for _, d := range catalogue {
		if d.Type == t {
			return d, true
		}
	}
	return DocInfo{}, false
}

// Aux carries the optional operator-supplied detail some documents can
// merge in. Keys follow the store's column naming (doctor_name,
// cert_from, pre_injury_hours, ...). All maps may be nil; every absent
// key degrades to a [REQUIRED]/[REVIEW] field, never an error.
type Aux struct {
	Medical  map[string]string
	Doctor   map[string]string
	Incident map[string]string
}

func (a Aux) medical(key string) string  { return a.Medical[key] }
func (a Aux) doctor(key string) string   { return a.Doctor[key] }
func (a Aux) incident(key string) string { return a.Incident[key] }

// File is one generated document.
type File struct {
	Name    string
	Content []byte
}

// Generate builds the requested documents for a case. Unknown types
// are skipped, matching the catalogue-driven behavior of the export
// surface. today anchors dates (letters, review dates, filenames).
func Generate(c *claims.Case, types []DocType, aux Aux, today time.Time) (map[DocType]File, error) {
	results := make(map[DocType]File, len(types))
	for _, t := range types {
		info, ok := Info(t)
		if !ok {
			continue
		}

		content, err := Render(t, c, aux, today)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", t, err)
		}
		results[t] = File{Name: filename(c, info, today), Content: content}
	}
	return results, nil
}

// Render produces the PDF for a single document type.
func Render(t DocType, c *claims.Case, aux Aux, today time.Time) ([]byte, error) {
	switch t {
	case DocLetterToWorker:
		return renderLetterToWorker(c, today)
	case DocRTWInformation:
		return renderRTWInformation(c)
	case DocRegisterOfInjury:
		return renderRegisterOfInjury(c, aux)
	case DocLetterToDoctor:
		return renderLetterToDoctor(c, aux, today)
	case DocRTWArrangement:
		return renderRTWArrangement(c, aux)
	case DocRTWPlan:
		return renderRTWPlan(c, aux, today)
	default:
		return nil, fmt.Errorf("unknown document type %q", t)
	}
}

// Fields exposes the flat field dictionary a document is filled from,
// without rendering. The renderer and the dictionary are assembled
// from the same builders, so the two cannot drift.
func Fields(t DocType, c *claims.Case, aux Aux, today time.Time) (FieldMap, error) {
	switch t {
	case DocLetterToWorker:
		return letterToWorkerFields(c, today), nil
	case DocRTWInformation:
		return rtwInformationFields(c), nil
	case DocRegisterOfInjury:
		return registerOfInjuryFields(c, aux), nil
	case DocLetterToDoctor:
		return letterToDoctorFields(c, aux, today), nil
	case DocRTWArrangement:
		return rtwArrangementFields(c, aux), nil
	case DocRTWPlan:
		return rtwPlanFields(c, aux, today), nil
	default:
		return nil, fmt.Errorf("unknown document type %q", t)
	}
}

func filename(c *claims.Case, info DocInfo, today time.Time) string {
	worker := c.WorkerName
	if worker == "" {
		worker = "Worker"
	}
	worker = strings.ReplaceAll(worker, " ", "_")
	name := strings.ReplaceAll(info.Name, " ", "_")
	return fmt.Sprintf("%s_%s_%s.pdf", worker, name, today.Format("20060102"))
}

// firstName pulls the worker's given name for the salutation.
func firstName(workerName string) string {
	parts := strings.Fields(workerName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
