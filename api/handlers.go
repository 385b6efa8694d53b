/*
handlers.go - HTTP API handlers for the case-management system

PURPOSE:
  Exposes the case-management engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

REQUEST FLOW:
  1. Parse HTTP request
  2. Normalise loose input (capacity free text, rate labels)
  3. Call domain logic (store, calculator, scheduler, alert builder)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Case / termination not found
  - 409: Conflict (second termination for a case)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - documents.go: Document generation endpoints
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sga/workcover-engine/claims"
	"github.com/sga/workcover-engine/compensation"
	"github.com/sga/workcover-engine/rtw"
	"github.com/sga/workcover-engine/store/sqlite"
)

// =============================================================================
// CASE HANDLERS
// =============================================================================

// ListCases returns cases, optionally filtered.
// GET /api/cases?state=VIC&state=NSW&capacity=...&priority=...&status=...
func (h *Handler) ListCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := sqlite.CaseFilter{States: q["state"]}
	for _, v := range q["capacity"] {
		filter.Capacities = append(filter.Capacities, claims.ParseCapacity(v))
	}
	for _, v := range q["priority"] {
		filter.Priorities = append(filter.Priorities, claims.Priority(strings.ToUpper(v)))
	}
	for _, v := range q["status"] {
		filter.Statuses = append(filter.Statuses, claims.CaseStatus(v))
	}

	cases, err := h.Store.ListCases(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list cases", err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

// CreateCase creates a new case.
func (h *Handler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.WorkerName == "" || req.State == "" {
		writeError(w, http.StatusBadRequest, "worker_name and state are required", nil)
		return
	}

	c := &claims.Case{
		WorkerName:        req.WorkerName,
		State:             strings.ToUpper(req.State),
		Entity:            req.Entity,
		Site:              req.Site,
		ClaimNumber:       req.ClaimNumber,
		DateOfInjury:      req.DateOfInjury,
		InjuryDescription: req.InjuryDescription,
		ShiftStructure:    req.ShiftStructure,
		CurrentCapacity:   claims.ParseCapacity(req.CurrentCapacity),
		PIAWE:             nullDecimal(req.PIAWE),
		ReductionRate:     parseRate(req.ReductionRate),
		Priority:          claims.Priority(strings.ToUpper(req.Priority)),
		Strategy:          req.Strategy,
		NextAction:        req.NextAction,
		Notes:             req.Notes,
	}

	if err := h.Store.CreateCase(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create case", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetCase returns the full case detail view.
func (h *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := claims.CaseID(chi.URLParam(r, "id"))

	c, err := h.Store.Case(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get case", err)
		return
	}

	certs, err := h.Store.CertificatesByCase(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load certificates", err)
		return
	}
	checklist, err := h.Store.Checklist(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load checklist", err)
		return
	}
	term, err := h.Store.TerminationByCase(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load termination", err)
		return
	}
	payroll, err := h.Store.PayrollByCase(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll", err)
		return
	}
	docs, err := h.Store.DocumentsByCase(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load documents", err)
		return
	}
	activity, err := h.Store.ActivityByCase(ctx, id, 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load activity", err)
		return
	}

	today := time.Now()
	certDTOs := make([]CertificateDTO, len(certs))
	for i, cert := range certs {
		status := claims.EvaluateCertificate(cert.CertTo, today)
		certDTOs[i] = CertificateDTO{
			Certificate: cert,
			Status:      status.Kind,
			StatusLabel: status.Label(),
			Days:        status.Days,
		}
	}

	writeJSON(w, http.StatusOK, CaseDetailResponse{
		Case:         c,
		Certificates: certDTOs,
		Checklist:    checklist,
		Termination:  term,
		Payroll:      payroll,
		Documents:    docs,
		Activity:     activity,
	})
}

// UpdateCase applies a partial update.
func (h *Handler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	var req UpdateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	upd := sqlite.CaseUpdate{
		Strategy:       req.Strategy,
		NextAction:     req.NextAction,
		Notes:          req.Notes,
		ShiftStructure: req.ShiftStructure,
	}
	if req.CurrentCapacity != nil {
		capacity := claims.ParseCapacity(*req.CurrentCapacity)
		upd.CurrentCapacity = &capacity
	}
	if req.Priority != nil {
		p := claims.Priority(strings.ToUpper(*req.Priority))
		upd.Priority = &p
	}
	if req.Status != nil {
		s := claims.CaseStatus(*req.Status)
		upd.Status = &s
	}
	if req.PIAWE != nil {
		d := nullDecimal(req.PIAWE)
		upd.PIAWE = &d
	}
	if req.ReductionRate != nil {
		rate := parseRate(*req.ReductionRate)
		upd.ReductionRate = &rate
	}

	if err := h.Store.UpdateCase(r.Context(), id, upd); err != nil {
		writeStoreError(w, "Failed to update case", err)
		return
	}

	c, err := h.Store.Case(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to reload case", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// =============================================================================
// CERTIFICATE HANDLERS
// =============================================================================

// ListCertificates returns a case's COC history with statuses.
func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	certs, err := h.Store.CertificatesByCase(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load certificates", err)
		return
	}

	today := time.Now()
	dtos := make([]CertificateDTO, len(certs))
	for i, cert := range certs {
		status := claims.EvaluateCertificate(cert.CertTo, today)
		dtos[i] = CertificateDTO{
			Certificate: cert,
			Status:      status.Kind,
			StatusLabel: status.Label(),
			Days:        status.Days,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AddCertificate records a new COC and syncs the case's capacity.
func (h *Handler) AddCertificate(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	var req AddCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cert := &claims.Certificate{
		CaseID:      id,
		CertFrom:    req.CertFrom,
		CertTo:      req.CertTo,
		Capacity:    claims.ParseCapacity(req.Capacity),
		DaysPerWeek: req.DaysPerWeek,
		HoursPerDay: req.HoursPerDay,
		Notes:       req.Notes,
	}
	if err := h.Store.AddCertificate(r.Context(), cert); err != nil {
		writeStoreError(w, "Failed to add certificate", err)
		return
	}
	writeJSON(w, http.StatusCreated, cert)
}

// CertificateTracker returns the latest certificate per active case
// with status totals.
// GET /api/certificates
func (h *Handler) CertificateTracker(w http.ResponseWriter, r *http.Request) {
	latest, err := h.Store.LatestCertificates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load certificates", err)
		return
	}

	today := time.Now()
	dtos := make([]CaseCertificateDTO, len(latest))
	totals := make(map[claims.StatusKind]int)
	for i, cert := range latest {
		status := claims.EvaluateCertificate(cert.CertTo, today)
		totals[status.Kind]++
		dtos[i] = CaseCertificateDTO{
			CaseCertificate: cert,
			Status:          status.Kind,
			StatusLabel:     status.Label(),
			Days:            status.Days,
		}
	}

	writeJSON(w, http.StatusOK, TrackerResponse{Certificates: dtos, Totals: totals})
}

// =============================================================================
// TERMINATION HANDLERS
// =============================================================================

func (h *Handler) ListTerminations(w http.ResponseWriter, r *http.Request) {
	terms, err := h.Store.ListTerminations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list terminations", err)
		return
	}
	writeJSON(w, http.StatusOK, terms)
}

func (h *Handler) CreateTermination(w http.ResponseWriter, r *http.Request) {
	var req CreateTerminationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.CaseID == "" || req.TerminationType == "" {
		writeError(w, http.StatusBadRequest, "case_id and termination_type are required", nil)
		return
	}

	t := &claims.Termination{
		CaseID:          claims.CaseID(req.CaseID),
		TerminationType: req.TerminationType,
		ApprovedBy:      req.ApprovedBy,
		ApprovedDate:    req.ApprovedDate,
		AssignedTo:      req.AssignedTo,
		Notes:           req.Notes,
	}
	if err := h.Store.CreateTermination(r.Context(), t); err != nil {
		writeStoreError(w, "Failed to create termination", err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTermination(w http.ResponseWriter, r *http.Request) {
	id := claims.TerminationID(chi.URLParam(r, "id"))

	var req UpdateTerminationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	upd := sqlite.TerminationUpdate{
		LetterDrafted:    req.LetterDrafted,
		LetterSent:       req.LetterSent,
		ResponseReceived: req.ResponseReceived,
		AssignedTo:       req.AssignedTo,
		Notes:            req.Notes,
	}
	if req.Status != nil {
		s := claims.TerminationStatus(*req.Status)
		upd.Status = &s
	}

	if err := h.Store.UpdateTermination(r.Context(), id, upd); err != nil {
		writeStoreError(w, "Failed to update termination", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// =============================================================================
// PAYROLL / CALCULATOR HANDLERS
// =============================================================================

// ListPayroll returns a case's payroll history.
func (h *Handler) ListPayroll(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	entries, err := h.Store.PayrollByCase(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// RecordPayroll computes a pay period from the case's PIAWE and rate,
// records the figures and returns both.
func (h *Handler) RecordPayroll(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	var req RecordPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	c, err := h.Store.Case(r.Context(), id)
	if err != nil {
		writeStoreError(w, "Failed to get case", err)
		return
	}

	piawe := decimal.Zero
	if c.PIAWE.Valid {
		piawe = c.PIAWE.Decimal
	}
	rate := c.ReductionRate.Fraction()
	res := compensation.Calculate(compensation.Input{
		PIAWE:      piawe,
		Rate:       rate,
		Earnings:   decimal.NewFromFloat(req.Earnings),
		DaysAbsent: req.DaysOff,
		BackPay:    decimal.NewFromFloat(req.BackPay),
	})

	entry := &claims.PayrollEntry{
		CaseID:        id,
		PeriodFrom:    req.PeriodFrom,
		PeriodTo:      req.PeriodTo,
		PIAWE:         piawe,
		ReductionRate: rate,
		DaysOff:       req.DaysOff,
		HoursWorked:   req.HoursWorked,
		Wages:         decimal.NewFromFloat(req.Earnings),
		Compensation:  res.Compensation,
		TopUp:         res.TopUp,
		BackPay:       decimal.NewFromFloat(req.BackPay),
		Total:         res.Total,
		Notes:         req.Notes,
	}
	if err := h.Store.RecordPayroll(r.Context(), entry); err != nil {
		writeStoreError(w, "Failed to record payroll", err)
		return
	}

	writeJSON(w, http.StatusCreated, RecordPayrollResponse{
		Entry:    entry,
		Computed: displayFigures(res),
	})
}

// PayrollHistory returns all payroll entries across cases.
func (h *Handler) PayrollHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.PayrollHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load payroll history", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// Calculator runs a standalone computation; nothing persists.
// POST /api/calculator
func (h *Handler) Calculator(w http.ResponseWriter, r *http.Request) {
	var req CalculatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res := compensation.Calculate(compensation.Input{
		PIAWE:      decimal.NewFromFloat(req.PIAWE),
		Rate:       parseRate(req.ReductionRate).Fraction(),
		Earnings:   decimal.NewFromFloat(req.Earnings),
		DaysAbsent: req.DaysAbsent,
		BackPay:    decimal.NewFromFloat(req.BackPay),
	})
	writeJSON(w, http.StatusOK, displayFigures(res))
}

// =============================================================================
// ALERTS / ACTIVITY / RTW HANDLERS
// =============================================================================

// Alerts returns the aggregated dashboard alerts plus header counts.
// GET /api/alerts
func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.Store.ActiveCases(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load cases", err)
		return
	}
	latest, err := h.Store.LatestCertificates(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load certificates", err)
		return
	}
	pending, err := h.Store.PendingTerminations(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load terminations", err)
		return
	}

	today := time.Now()
	alerts := claims.BuildAlerts(active, latest, pending, today)

	counts := DashboardCounts{
		ActiveCases:         len(active),
		PendingTerminations: len(pending),
	}
	covered := make(map[claims.CaseID]bool, len(latest))
	for _, cert := range latest {
		covered[cert.CaseID] = true
		if claims.EvaluateCertificate(cert.CertTo, today).Kind == claims.StatusExpired {
			counts.COCExpired++
		}
	}
	for _, c := range active {
		switch {
		case c.CurrentCapacity == claims.CapacityNone:
			counts.NoCapacity++
		case c.CurrentCapacity == claims.CapacityModified:
			counts.ModifiedDuties++
		}
		if !covered[c.ID] && !c.CurrentCapacity.IsFull() {
			counts.COCMissing++
		}
	}

	writeJSON(w, http.StatusOK, AlertsResponse{Alerts: alerts, Counts: counts})
}

// Activity returns audit log entries.
// GET /api/activity?case_id=&limit=
func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	var (
		entries []claims.ActivityEntry
		err     error
	)
	if caseID := r.URL.Query().Get("case_id"); caseID != "" {
		entries, err = h.Store.ActivityByCase(r.Context(), claims.CaseID(caseID), limit)
	} else {
		entries, err = h.Store.RecentActivity(r.Context(), limit)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load activity", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// RTWSchedule previews the progressive return-to-work schedule for a
// case's current certificate and capacity.
// GET /api/cases/{id}/rtw-schedule
func (h *Handler) RTWSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := claims.CaseID(chi.URLParam(r, "id"))

	c, err := h.Store.Case(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to get case", err)
		return
	}

	certs, err := h.Store.CertificatesByCase(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load certificates", err)
		return
	}

	currentHours := 0.0
	if len(certs) > 0 {
		currentHours = rtw.CurrentHoursFromCertificate(&certs[0])
	}
	targetHours := float64(rtw.DefaultTargetHours)

	weeks := rtw.BuildSchedule(currentHours, targetHours, c.CurrentCapacity)
	if currentHours == 0 {
		currentHours = rtw.DefaultCurrentHours
	}

	writeJSON(w, http.StatusOK, RTWScheduleResponse{
		CaseID:       c.ID,
		Capacity:     c.CurrentCapacity,
		CurrentHours: currentHours,
		TargetHours:  targetHours,
		Weeks:        weeks,
		DutyLevels:   rtw.AllDutyLevels(),
	})
}

// =============================================================================
// CHECKLIST HANDLERS
// =============================================================================

func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	items, err := h.Store.Checklist(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load checklist", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	id := claims.CaseID(chi.URLParam(r, "id"))

	var req ChecklistUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.DocType == "" {
		writeError(w, http.StatusBadRequest, "doc_type is required", nil)
		return
	}

	if err := h.Store.SetChecklistItem(r.Context(), id, req.DocType, req.Present); err != nil {
		writeStoreError(w, "Failed to update checklist", err)
		return
	}

	items, err := h.Store.Checklist(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load checklist", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps storage sentinels to HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, claims.ErrCaseNotFound),
		errors.Is(err, claims.ErrTerminationNotFound),
		errors.Is(err, claims.ErrCertificateNotFound):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, claims.ErrTerminationExists):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*f), Valid: true}
}

// parseRate normalises a reduction-rate label. Anything that is not a
// recognised rate degrades to N/A rather than failing the request.
func parseRate(s string) claims.ReductionRate {
	switch strings.TrimSpace(s) {
	case "95%", "95", "0.95":
		return claims.Rate95
	case "80%", "80", "0.80", "0.8":
		return claims.Rate80
	default:
		return claims.RateNA
	}
}
