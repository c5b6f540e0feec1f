// Package domain contains the core entities of the flashcard service: the
// question/answer Card, the Job that tracks one asynchronous generation, the
// GenerationResult produced by a single backend call, and the Payload that is
// handed back to callers. It has no knowledge of HTTP, storage or the model
// backend.
package domain
