// Package ollama provides a generation.Backend for a local Ollama server.
//
// Completions use the non-streaming /api/generate endpoint. Reachability is
// checked with /api/tags, which lists installed models without loading one.
package ollama
