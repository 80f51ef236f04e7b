// Package testutil provides utilities for testing mjstudio components.
//
// Key components:
//   - MemoryFS: in-memory filesystem with per-path error injection
//   - FakeCompiler / FakeSnapshotter: scripted compiler and snapshot services
//   - NotifyRecorder: captures notifications for assertions
//   - FakeDialogs: returns canned open/save dialog answers
//   - FakeFileWriter: records arbitrary-path writes
//   - FakeMailer: records sent messages
//   - EventLog: ordered record of steps taken by concurrent code
//
// All test data should be defined inline, not in external files.
package testutil
