// Package memory provides an in-process implementation of store.JobStore.
//
// Jobs live only as long as the process. All reads return deep copies so
// callers never share state with the store.
package memory
