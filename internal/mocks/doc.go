// Package mocks provides centralized mock implementations for testing.
//
// This package contains mock implementations of interfaces used throughout the application,
// facilitating consistent and DRY testing across the codebase. Instead of defining
// inline mocks in individual test files, these standardized mock implementations
// can be reused.
//
// Key Features:
//
//   - Function fields for every interface method
//   - Call tracking guarded by a mutex, safe for goroutine-driven tests
//   - Canned results for the common cases
//
// Usage:
//
// Import the mocks package in your test file and create the required mock:
//
//	import "github.com/phrazzld/scry-cards/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    backend := &mocks.MockBackend{
//	        CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
//	            return `[{"question": "Q", "answer": "A"}]`, nil
//	        },
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
//  4. Update existing tests to use the centralized mock implementation
package mocks
