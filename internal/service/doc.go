// Package service contains the application use cases for flashcard
// generation. JobService is the single entry point used by the HTTP layer:
// it creates jobs, reports their status and results, and runs synchronous
// generations.
//
// Error handling:
//   - Expected conditions are returned as sentinel errors (ErrJobNotFound,
//     ErrJobNotReady, ErrNoResult, domain.ErrEmptyInput)
//   - Anything else is wrapped in a JobServiceError carrying the operation
//   - The API layer maps both to HTTP status codes
package service
