// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code depends on the Validator interface. The go-playground
// implementation translates failures into a snake_case field to message map.
package validator
