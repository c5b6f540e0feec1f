// Package task runs flashcard generation jobs in the background.
//
// A TaskFactoryEventHandler turns each flashcard_generation event into a
// FlashcardGenerationTask and submits it to the TaskRunner. The runner gives
// every task its own goroutine and bounds how many execute at once, so HTTP
// requests never wait on the language model.
package task
