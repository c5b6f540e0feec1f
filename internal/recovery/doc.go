// Package recovery turns raw language-model output into flashcards.
//
// Models asked for a bare JSON array routinely wrap it in markdown code fences,
// surround it with prose, or leave a trailing comma before a closing bracket.
// Recover first tries a strict decode and, when that fails, runs an ordered
// list of small text stages (fence strip, array extraction, trailing-comma
// removal) before decoding again. Every stage is a pure function and the
// pipeline as a whole is total: it always returns a Result, never an error.
package recovery
