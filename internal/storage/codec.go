package storage

import "strings"

// ListDelimiter separates entries of list-valued columns (tags, attached files).
const ListDelimiter = ","

// EncodeList joins a list into its column form.
func EncodeList(values []string) string {
	return strings.Join(values, ListDelimiter)
}

// DecodeList splits a column value back into a list.
// The empty string decodes to an empty list, never [""].
func DecodeList(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ListDelimiter)
}
