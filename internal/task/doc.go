// Package task runs background work on a bounded in-memory queue drained by a
// pool of workers. Generated articles are archived this way so that slow or
// failing storage never delays or fails a generation request.
package task
