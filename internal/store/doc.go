// Package store defines interfaces for job persistence.
// These interfaces keep the job lifecycle logic independent of where jobs
// are kept; the in-memory implementation lives in internal/platform/memory.
package store
