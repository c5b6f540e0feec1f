// Package gemini provides a generation.Backend that sends prompts to Google's
// Gemini API through the google.golang.org/genai client.
//
// It is an alternative to the default Ollama backend, selected at startup with
// backend.provider=gemini. The backend only performs the completion call; the
// prompt, timeout and response recovery are handled by generation.Client.
package gemini
