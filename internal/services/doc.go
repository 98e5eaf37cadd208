// Package services defines the failure taxonomy shared by every pipeline
// stage and the helpers that attach stage context to errors.
//
// Stages never substitute defaults or continue past a failure; they wrap
// the cause with one of the sentinel markers here and propagate it to the
// caller, which classifies the outcome with errors.Is.
package services
