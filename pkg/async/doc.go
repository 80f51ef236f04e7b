// Package async provides the Future types used for every suspension point
// of the template pipelines: compiler calls, snapshot requests and
// background persistence.
//
// A Future is completed exactly once by the goroutine started with Go or
// Exec. Callers that need the outcome Await it; fire-and-forget callers
// simply drop it.
package async
