package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/teenbudget/backend/internal/report"
)

type reportRequest struct {
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
	Email bool   `json:"email"`
}

func (h *Handler) parseReportRange(req reportRequest) (from, to time.Time, err error) {
	from, err = time.Parse("2006-01-02", req.From)
	if err != nil {
		return from, to, fmt.Errorf("from must be YYYY-MM-DD")
	}
	to, err = time.Parse("2006-01-02", req.To)
	if err != nil {
		return from, to, fmt.Errorf("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("to must not be before from")
	}
	// make the range inclusive of the last day
	return from, to.Add(24*time.Hour - time.Nanosecond), nil
}

// PDFReport renders and downloads the PDF report; with "email": true the
// document is also sent to the user's address.
func (h *Handler) PDFReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := h.parseReportRange(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, emailed, err := h.svc.GeneratePDFReport(r.Context(), from, to, req.Email)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.PDFFilename))
	w.Header().Set("X-Report-Emailed", fmt.Sprintf("%v", emailed))
	w.Write(data)
}

// ExcelReport renders and downloads the spreadsheet report
func (h *Handler) ExcelReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := h.decode(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := h.parseReportRange(req)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.svc.GenerateExcelReport(r.Context(), from, to)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.ExcelFilename))
	w.Write(data)
}
