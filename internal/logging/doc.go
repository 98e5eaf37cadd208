// Package logging builds the slog loggers used across the pipeline.
//
// Two output formats are supported: a compact console form
// (timestamp LEVEL component: message key=value ...) and standard JSON.
// Components tag their loggers via WithComponent; the console handler
// renders that attribute as a message prefix instead of a key/value pair.
package logging
