// Package events decouples job creation from job execution.
//
// The job service emits a TaskRequestEvent for every accepted job; the task
// package registers a handler that turns the event into a runnable task.
// Neither side imports the other.
package events
