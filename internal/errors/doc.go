// Package errors provides structured, actionable error messages for the
// vtree command line.
//
// Each error has a code that maps to a registered template:
//   - E1xx: tree file errors (syntax, structure, missing files)
//   - E2xx: configuration errors
//   - E3xx: command line usage errors
//   - E4xx: live server errors
//
// # Usage
//
//	err := errors.New("E102").
//	    WithLocation("page.yaml", 0, 0).
//	    WithSuggestion("move the text into a child text node").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//
// Library packages return plain wrapped errors; this package is only used
// at the CLI boundary to turn them into something a user can act on.
package errors
