// Package uid generates identifiers: snowflake numbers for database rows and
// UUIDv7 strings for correlation ids.
package uid

// NumberID generates unique int64 ids that sort by creation time.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string ids.
type StringID interface {
	Generate() string
}
