// Package batch analyzes every media file in a directory tree with a
// bounded worker pool, collecting per-file outcomes instead of stopping
// at the first failure.
package batch
