package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/employee-directory/internal/apperror"
	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/query"
	"github.com/sakif/employee-directory/internal/service"
)

// EmployeeHandler manages the REST endpoints for the employee directory.
//
// Each handler method does exactly three things: parse/validate the request,
// call the service, translate the result to HTTP. Business rules live one
// layer down; the handler never touches the store directly.
type EmployeeHandler struct {
	service *service.EmployeeService
	logger  *slog.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(svc *service.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: svc, logger: logger}
}

// parseListQuery turns the request's query string into a query.Descriptor.
//
// VALIDATION POLICY:
// page/limit must parse as positive integers when present (absent means the
// engine's defaults apply). status and sortOrder are closed enums. sortBy is
// deliberately NOT validated here — the engine ignores unknown sort fields
// rather than erroring, so the handler just passes it through.
func parseListQuery(r *http.Request) (query.Descriptor, error) {
	q := r.URL.Query()

	desc := query.Descriptor{
		Search:     q.Get("search"),
		Department: q.Get("department"),
		Title:      q.Get("title"),
		Location:   q.Get("location"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
	}

	if status := q.Get("status"); status != "" {
		if !model.Status(status).Valid() {
			return desc, apperror.ValidationFailed("status", "status must be active or inactive")
		}
		desc.Status = model.Status(status)
	}

	if desc.SortOrder != "" && desc.SortOrder != query.OrderAsc && desc.SortOrder != query.OrderDesc {
		return desc, apperror.ValidationFailed("sortOrder", "sortOrder must be asc or desc")
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return desc, apperror.ValidationFailed("page", "page must be a positive integer")
		}
		desc.Page = page
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return desc, apperror.ValidationFailed("limit", "limit must be a positive integer")
		}
		desc.Limit = limit
	}

	return desc, nil
}

// HandleList runs the query engine.
//
// HTTP: GET /employees?search&department&title&location&status&page&limit&sortBy&sortOrder
//
// RESPONSE: {"employees":[...],"total":42,"page":1,"limit":10}
// total is always the filtered (pre-pagination) count, so the client can
// compute the page count as ceil(total/limit).
func (h *EmployeeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	desc, err := parseListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.List(r.Context(), desc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleFilters returns the distinct facet values for the filter dropdowns.
//
// HTTP: GET /employees/filters
// RESPONSE: {"departments":[...],"titles":[...],"locations":[...]}
func (h *EmployeeHandler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Filters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, opts)
}

// HandleGetByID returns a single employee.
//
// HTTP: GET /employees/{id} → 200 + record, or 404
func (h *EmployeeHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	emp, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emp)
}

// HandleCreate adds a new employee.
//
// HTTP: POST /employees → 201 + record, 400 on validation/duplicate email
func (h *EmployeeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid employee JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := req.validate(); err != nil {
		writeError(w, err)
		return
	}

	emp, err := h.service.Create(r.Context(), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, emp)
}

// HandleUpdate applies a partial patch to an existing employee.
//
// HTTP: PATCH /employees/{id} → 200 + merged record, 404, or 400
//
// Fields absent from the body keep their current values; the id is
// immutable regardless of what the body contains (the patch type has no id
// field, so a client-sent "id" key is simply dropped by the decoder).
func (h *EmployeeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.EmployeePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("invalid patch JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := validatePatch(&patch); err != nil {
		writeError(w, err)
		return
	}

	emp, err := h.service.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, emp)
}

// HandleDelete removes an employee.
//
// HTTP: DELETE /employees/{id} → 204 empty, or 404
// Deleting the same id twice succeeds once, then 404s — ids are never
// recycled, so the second delete can't hit a different record.
func (h *EmployeeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
