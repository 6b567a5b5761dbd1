package query

import "github.com/sakif/employee-directory/internal/model"

// Options holds the distinct facet values currently present in the store,
// for populating the client's filter dropdowns.
type Options struct {
	Departments []string `json:"departments"`
	Titles      []string `json:"titles"`
	Locations   []string `json:"locations"`
}

// FilterOptions extracts the distinct departments, titles, and locations
// from a snapshot of the store.
//
// The sets reflect LIVE data — the caller passes a fresh All() snapshot on
// every request, so options appear and disappear as records are created and
// deleted. Order within each set is first-seen and not part of the contract.
// An empty store yields three empty (never nil, so JSON shows []) slices.
func FilterOptions(records []model.Employee) Options {
	opts := Options{
		Departments: []string{},
		Titles:      []string{},
		Locations:   []string{},
	}

	seenDept := map[string]bool{}
	seenTitle := map[string]bool{}
	seenLoc := map[string]bool{}

	for _, emp := range records {
		if !seenDept[emp.Department] {
			seenDept[emp.Department] = true
			opts.Departments = append(opts.Departments, emp.Department)
		}
		if !seenTitle[emp.Title] {
			seenTitle[emp.Title] = true
			opts.Titles = append(opts.Titles, emp.Title)
		}
		if !seenLoc[emp.Location] {
			seenLoc[emp.Location] = true
			opts.Locations = append(opts.Locations, emp.Location)
		}
	}

	return opts
}
