// Package history records completed analyses in a local SQLite database
// so past runs can be listed and re-exported settings compared.
package history
