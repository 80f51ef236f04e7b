// Package filesystem provides the filesystem abstraction used by the
// template datastore.
//
// NewOS is the real filesystem. NewMemory keeps everything in an afero
// MemMapFs; testutil.MemoryFS adds error injection on top of the same
// interface.
package filesystem
