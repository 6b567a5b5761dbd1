// Package query implements the employee query engine: free-text search,
// facet filters, dynamic-field sorting, and pagination over a snapshot of
// the record store.
//
// THE PIPELINE IS STRICTLY ORDERED:
//
//	filter (search, then facets) → sort → paginate
//
// Total is counted AFTER filtering and BEFORE pagination, so clients can
// compute the page count regardless of which page they asked for.
//
// The engine never does I/O and never returns an error: malformed parameters
// are the controller's problem, and unknown sort fields are deliberately a
// silent no-op rather than a failure (see sortFields).
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sakif/employee-directory/internal/model"
)

// Pagination defaults, applied when the descriptor carries non-positive
// values (i.e. the parameter was absent from the request).
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Sort order values recognized by the engine. Anything else sorts ascending.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Descriptor is the structured form of one read request's parameters.
//
// WHY A STRUCT AND NOT A map[string]string?
// Named fields with documented defaults make the contract explicit: the
// compiler knows every parameter the engine understands, and a typo in a
// field name is a build error instead of a silently ignored filter.
type Descriptor struct {
	Search     string       // substring match on names/email, case-insensitive; blank = no filter
	Department string       // exact match, case-sensitive; blank = no filter
	Title      string       // exact match, case-sensitive; blank = no filter
	Location   string       // exact match, case-sensitive; blank = no filter
	Status     model.Status // exact match; blank = no filter
	SortBy     string       // field name; unknown values leave store order untouched
	SortOrder  string       // OrderAsc (default) or OrderDesc
	Page       int          // 1-based; <=0 means DefaultPage
	Limit      int          // records per page; <=0 means DefaultLimit
}

// Result is one page of a query plus the metadata the client needs to
// paginate: Total is the filtered count BEFORE the page slice was taken.
type Result struct {
	Employees []model.Employee `json:"employees"`
	Total     int              `json:"total"`
	Page      int              `json:"page"`
	Limit     int              `json:"limit"`
}

// sortField describes how to order records by one field. Exactly one of
// str/num is set.
type sortField struct {
	str func(*model.Employee) string
	num func(*model.Employee) int
}

// sortFields is the enumeration-to-comparator lookup table.
//
// WHY A TABLE INSTEAD OF REFLECTION?
// The original behaviour this engine preserves was "index the record by the
// sortBy string" — dynamic field access. In Go we make the supported set
// explicit: a field sorts if and only if it has an entry here. Unknown names
// (and fields like avatar that make no sense to sort) fall through to "no
// reordering", never to an error.
//
// Date fields are ISO-formatted strings, so collated string comparison
// orders them chronologically for free.
var sortFields = map[string]sortField{
	"firstName":   {str: func(e *model.Employee) string { return e.FirstName }},
	"lastName":    {str: func(e *model.Employee) string { return e.LastName }},
	"email":       {str: func(e *model.Employee) string { return e.Email }},
	"department":  {str: func(e *model.Employee) string { return e.Department }},
	"title":       {str: func(e *model.Employee) string { return e.Title }},
	"location":    {str: func(e *model.Employee) string { return e.Location }},
	"hireDate":    {str: func(e *model.Employee) string { return e.HireDate }},
	"dateOfBirth": {str: func(e *model.Employee) string { return e.DateOfBirth }},
	"salary":      {num: func(e *model.Employee) int { return e.Salary }},
}

// Execute runs the full pipeline over a snapshot of the store.
//
// The caller owns the records slice (it comes from the store's All(), which
// copies), so filtering and sorting in place here is safe.
func Execute(records []model.Employee, q Descriptor) Result {
	filtered := applyFilters(records, q)
	applySort(filtered, q.SortBy, q.SortOrder)

	page := q.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	// Half-open slice [(page-1)*limit, +limit), clamped to the filtered set.
	// A page past the end is an empty page, not an error — the client can
	// always trust Total to know where the end is.
	start := (page - 1) * limit
	end := start + limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result{
		Employees: filtered[start:end],
		Total:     len(filtered),
		Page:      page,
		Limit:     limit,
	}
}

// applyFilters returns the records matching every requested criterion.
// Search and each facet combine as AND. The result is a fresh slice; the
// input order (store order: newest first) is preserved.
func applyFilters(records []model.Employee, q Descriptor) []model.Employee {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	filtered := make([]model.Employee, 0, len(records))
	for _, emp := range records {
		if search != "" && !matchesSearch(&emp, search) {
			continue
		}
		if q.Department != "" && emp.Department != q.Department {
			continue
		}
		if q.Title != "" && emp.Title != q.Title {
			continue
		}
		if q.Location != "" && emp.Location != q.Location {
			continue
		}
		if q.Status != "" && emp.Status != q.Status {
			continue
		}
		filtered = append(filtered, emp)
	}
	return filtered
}

// matchesSearch reports whether the lowercased search term appears in the
// first name, last name, email, or "first last" concatenation.
func matchesSearch(emp *model.Employee, term string) bool {
	first := strings.ToLower(emp.FirstName)
	last := strings.ToLower(emp.LastName)
	return strings.Contains(first, term) ||
		strings.Contains(last, term) ||
		strings.Contains(strings.ToLower(emp.Email), term) ||
		strings.Contains(first+" "+last, term)
}

// applySort orders records in place by the named field, if it is sortable.
//
// STABILITY MATTERS:
// SortStableFunc keeps equal keys in their pre-sort (filtered) order, and
// descending simply negates the comparator sign. So flipping the order
// exactly reverses the comparator's effect — ties are NOT re-shuffled into
// a different arrangement.
func applySort(records []model.Employee, sortBy, sortOrder string) {
	field, ok := sortFields[sortBy]
	if !ok {
		return
	}

	sign := 1
	if sortOrder == OrderDesc {
		sign = -1
	}

	if field.num != nil {
		slices.SortStableFunc(records, func(a, b model.Employee) int {
			return sign * (field.num(&a) - field.num(&b))
		})
		return
	}

	// Locale-aware comparison for string fields, matching how the web
	// client's locale would order names. A Collator keeps internal buffers
	// and is not safe for concurrent use, so each sort builds its own
	// rather than sharing one across requests.
	cl := collate.New(language.English)
	slices.SortStableFunc(records, func(a, b model.Employee) int {
		return sign * cl.CompareString(field.str(&a), field.str(&b))
	})
}
