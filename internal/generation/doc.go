// Package generation turns free text into flashcards by asking a language
// model backend for a JSON array of question/answer pairs.
//
// The Client builds the prompt from a text/template, bounds every backend call
// with a timeout and a low temperature, and runs the backend's reply through
// the recovery pipeline. Generate never returns an error: backend failures are
// folded into the returned domain.GenerationResult together with a placeholder
// diagnostic card, so callers always receive something renderable.
//
// Concrete backends (Ollama, Gemini) live under internal/platform and satisfy
// the Backend interface defined here.
package generation
