/*
handlers_test.go - HTTP surface tests

Tests for:
- Case creation, retrieval and partial update over HTTP
- Certificate tracker totals and capacity sync
- Termination conflict handling (one per case)
- Calculator and payroll recording
- Document generation (single PDF vs zip archive)
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/docgen"
	"github.com/sga/workcover-engine/store/sqlite"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRouter(NewHandler(store, logger))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body: %s", rec.Body.String())
	return out
}

func createCase(t *testing.T, router http.Handler, name, state string) claims.Case {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/cases", CreateCaseRequest{
		WorkerName:      name,
		State:           state,
		Site:            "Central Plaza",
		ClaimNumber:     "WC-2025-0042",
		DateOfInjury:    "2025-01-10",
		CurrentCapacity: "Modified Duties",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[claims.Case](t, rec)
}

func TestCreateCase_AndDetailView(t *testing.T) {
	// GIVEN: a freshly created case
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "vic")

	// THEN: the state is normalised and defaults applied
	assert.Equal(t, "VIC", c.State)
	assert.Equal(t, claims.CapacityModified, c.CurrentCapacity)
	assert.Equal(t, claims.StatusActive, c.Status)
	assert.NotEmpty(t, c.ID)

	// WHEN: the detail view is fetched
	rec := doJSON(t, router, http.MethodGet, "/api/cases/"+string(c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode[CaseDetailResponse](t, rec)

	// THEN: the checklist is pre-seeded and creation was logged
	assert.Len(t, detail.Checklist, len(claims.RequiredDocuments))
	require.NotEmpty(t, detail.Activity)
	assert.Equal(t, "Case Created", detail.Activity[0].Action)
	assert.Nil(t, detail.Termination)
}

func TestCreateCase_RequiresWorkerAndState(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/cases", CreateCaseRequest{WorkerName: "No State"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/cases", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCase_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/cases/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.NotEmpty(t, resp.Error)
}

func TestUpdateCase_Partial(t *testing.T) {
	// GIVEN: an existing case
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	// WHEN: only priority and PIAWE are updated
	priority := "high"
	piawe := 1250.50
	rec := doJSON(t, router, http.MethodPut, "/api/cases/"+string(c.ID), UpdateCaseRequest{
		Priority: &priority,
		PIAWE:    &piawe,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[claims.Case](t, rec)

	// THEN: the touched fields changed and the rest survived
	assert.Equal(t, claims.PriorityHigh, updated.Priority)
	require.True(t, updated.PIAWE.Valid)
	assert.Equal(t, "1250.5", updated.PIAWE.Decimal.String())
	assert.Equal(t, "Jane Citizen", updated.WorkerName)
	assert.Equal(t, claims.CapacityModified, updated.CurrentCapacity)
}

func TestAddCertificate_SyncsCapacityAndTracker(t *testing.T) {
	// GIVEN: a case on modified duties
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	// WHEN: a current no-capacity certificate is added
	days := 5
	hours := 4.0
	certTo := time.Now().AddDate(0, 0, 30).Format(claims.DateLayout)
	rec := doJSON(t, router, http.MethodPost, "/api/cases/"+string(c.ID)+"/certificates", AddCertificateRequest{
		CertFrom:    time.Now().Format(claims.DateLayout),
		CertTo:      certTo,
		Capacity:    "no current capacity",
		DaysPerWeek: &days,
		HoursPerDay: &hours,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// THEN: the case's capacity follows the certificate
	rec = doJSON(t, router, http.MethodGet, "/api/cases/"+string(c.ID), nil)
	detail := decode[CaseDetailResponse](t, rec)
	assert.Equal(t, claims.CapacityNone, detail.Case.CurrentCapacity)

	// AND: the tracker reports one current certificate
	rec = doJSON(t, router, http.MethodGet, "/api/certificates", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tracker := decode[TrackerResponse](t, rec)
	require.Len(t, tracker.Certificates, 1)
	assert.Equal(t, claims.StatusCurrent, tracker.Certificates[0].Status)
	assert.Equal(t, 1, tracker.Totals[claims.StatusCurrent])
}

func TestCreateTermination_SecondIsConflict(t *testing.T) {
	// GIVEN: a case with an open termination
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	req := CreateTerminationRequest{
		CaseID:          string(c.ID),
		TerminationType: claims.TerminationTypeInherent,
		ApprovedBy:      "HR Director",
	}
	rec := doJSON(t, router, http.MethodPost, "/api/terminations", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// WHEN: a second termination is opened for the same case
	rec = doJSON(t, router, http.MethodPost, "/api/terminations", req)

	// THEN: the request conflicts
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCalculator_ModifiedDuties(t *testing.T) {
	// GIVEN: PIAWE 1000 at 95% with 400 earned on modified duties
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/calculator", CalculatorRequest{
		PIAWE:         1000,
		ReductionRate: "95%",
		Earnings:      400,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[CalculatorResponse](t, rec)

	// THEN: comp = 950 - 400*0.95 = 570, top-up tops wages to entitlement
	assert.Equal(t, "950.00", res.Entitlement)
	assert.Equal(t, "570.00", res.Compensation)
	assert.Equal(t, "550.00", res.TopUp)
}

func TestRecordPayroll_UsesCaseFigures(t *testing.T) {
	// GIVEN: a case with PIAWE 1000 at 95%
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	piawe := 1000.0
	rate := "95%"
	rec := doJSON(t, router, http.MethodPut, "/api/cases/"+string(c.ID), UpdateCaseRequest{
		PIAWE:         &piawe,
		ReductionRate: &rate,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// WHEN: a pay period is recorded with 400 earned
	rec = doJSON(t, router, http.MethodPost, "/api/cases/"+string(c.ID)+"/payroll", RecordPayrollRequest{
		PeriodFrom: "2025-03-03",
		PeriodTo:   "2025-03-09",
		Earnings:   400,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[RecordPayrollResponse](t, rec)

	// THEN: the figures come from the case, not the request
	assert.Equal(t, "570.00", res.Computed.Compensation)
	assert.Equal(t, "970.00", res.Computed.Total)
	require.NotNil(t, res.Entry)
	assert.Equal(t, "1000", res.Entry.PIAWE.String())

	// AND: the entry lands in the case history
	rec = doJSON(t, router, http.MethodGet, "/api/cases/"+string(c.ID)+"/payroll", nil)
	entries := decode[[]claims.PayrollEntry](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-09", entries[0].PeriodTo)
}

func TestChecklist_UpdateOverHTTP(t *testing.T) {
	// GIVEN: a case with the seeded checklist
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	// WHEN: one document is marked present
	rec := doJSON(t, router, http.MethodPut, "/api/cases/"+string(c.ID)+"/checklist", ChecklistUpdateRequest{
		DocType: "Claim Form",
		Present: true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	items := decode[[]claims.ChecklistItem](t, rec)

	present := 0
	for _, item := range items {
		if item.Present {
			present++
			assert.Equal(t, "Claim Form", item.DocType)
		}
	}
	assert.Equal(t, 1, present)
}

func TestChecklist_UnknownCaseIsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/cases/missing/checklist", ChecklistUpdateRequest{
		DocType: "Claim Form",
		Present: true,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAlerts_CountsAndSeverities(t *testing.T) {
	// GIVEN: a no-capacity case with an expired certificate
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	expired := time.Now().AddDate(0, 0, -10).Format(claims.DateLayout)
	rec := doJSON(t, router, http.MethodPost, "/api/cases/"+string(c.ID)+"/certificates", AddCertificateRequest{
		CertTo:   expired,
		Capacity: "No Capacity",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// AND: a second active case with no certificate at all
	createCase(t, router, "Bob Builder", "NSW")

	// WHEN: alerts are fetched
	rec = doJSON(t, router, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[AlertsResponse](t, rec)

	// THEN: the header counts reflect both cases
	assert.Equal(t, 2, res.Counts.ActiveCases)
	assert.Equal(t, 1, res.Counts.NoCapacity)
	assert.Equal(t, 1, res.Counts.COCExpired)
	assert.Equal(t, 1, res.Counts.COCMissing)

	// AND: the expired COC alert outranks the missing-COC warning
	require.NotEmpty(t, res.Alerts)
	assert.Equal(t, claims.SeverityUrgent, res.Alerts[0].Severity)
}

func TestRTWSchedule_FromLatestCertificate(t *testing.T) {
	// GIVEN: a modified-duties case certified 4h x 3d
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	days := 3
	hours := 4.0
	certTo := time.Now().AddDate(0, 0, 14).Format(claims.DateLayout)
	rec := doJSON(t, router, http.MethodPost, "/api/cases/"+string(c.ID)+"/certificates", AddCertificateRequest{
		CertTo:      certTo,
		Capacity:    "Modified Duties",
		DaysPerWeek: &days,
		HoursPerDay: &hours,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// WHEN: the schedule preview is fetched
	rec = doJSON(t, router, http.MethodGet, "/api/cases/"+string(c.ID)+"/rtw-schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[RTWScheduleResponse](t, rec)

	// THEN: the ramp starts at the certified hours and ends at target
	require.Len(t, res.Weeks, 4)
	assert.Equal(t, 12.0, res.CurrentHours)
	assert.Equal(t, 12.0, res.Weeks[0].Hours)
	assert.Equal(t, 38.0, res.Weeks[3].Hours)
	assert.Equal(t, 4, res.Weeks[3].DutyLevel)
	assert.Len(t, res.DutyLevels, 4)
}

func TestGenerateDocuments_SinglePDF(t *testing.T) {
	// GIVEN: a case
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	// WHEN: one document type is requested
	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/cases/%s/documents/generate", c.ID),
		GenerateDocumentsRequest{Types: []docgen.DocType{"letter_to_worker"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: a PDF streams back and the generation leaves an audit trail
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Jane_Citizen_Letter_to_Worker")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	detail := decode[CaseDetailResponse](t, doJSON(t, router, http.MethodGet, "/api/cases/"+string(c.ID), nil))
	require.Len(t, detail.Documents, 1)
	assert.Equal(t, "letter_to_worker", detail.Documents[0].DocType)
}

func TestGenerateDocuments_MultipleAsZip(t *testing.T) {
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/cases/%s/documents/generate", c.ID),
		GenerateDocumentsRequest{Types: []docgen.DocType{"letter_to_worker", "rtw_plan"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".zip")
	// Zip local file header magic.
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestGenerateDocuments_UnknownTypesOnly(t *testing.T) {
	router := newTestRouter(t)
	c := createCase(t, router, "Jane Citizen", "VIC")

	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/cases/%s/documents/generate", c.ID),
		GenerateDocumentsRequest{Types: []docgen.DocType{"payslip"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentTypes_Catalogue(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/documents/types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var catalogue []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&catalogue))
	assert.Len(t, catalogue, 6)
}
