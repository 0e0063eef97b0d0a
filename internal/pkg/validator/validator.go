package validator

// Validator validates a struct by its tags.
type Validator interface {
	Validate(data any) error
}
