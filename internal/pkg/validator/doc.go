// Package validator checks usecase input structs against their validate tags.
//
// Errors returned by Validate carry one message per failing field, keyed by the
// snake_case field name, and are understood by goerror.NewInvalidInput.
package validator
