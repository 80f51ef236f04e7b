// Package synthfs writes user-facing files (exports, screenshots) through a
// synthfs pipeline on the real file system.
//
// All writes of one request are planned together, parent directories
// first, and executed as a single pipeline run.
package synthfs
