package kegg

import (
	"fmt"
)

// NetworkError is returned when KEGG is unreachable or answers with a non-2xx status
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("kegg %s: %s returned status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("kegg %s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError is returned when a KEGG response does not have the expected shape
type ParseError struct {
	Op   string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("kegg %s: line %d: %s", e.Op, e.Line, e.Msg)
	}
	return fmt.Sprintf("kegg %s: %s", e.Op, e.Msg)
}

// CatalogFetchError means the pathway catalog is unavailable. Callers show an
// empty catalog and a warning instead of failing.
type CatalogFetchError struct {
	Err error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("pathway catalog unavailable: %v", e.Err)
}

func (e *CatalogFetchError) Unwrap() error { return e.Err }
