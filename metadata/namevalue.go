// Package metadata holds the name/value pairs attached to archived
// estimate records, e.g. deployment labels set on the command line.
package metadata

// NameValue is an archival-friendly type for ServerMetadata "name"/"value" pairs.
type NameValue struct {
	Name  string
	Value string
}
