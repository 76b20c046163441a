// Package application provides application initialization and dependency wiring.
// It encapsulates the creation of the API client, openings book, analyzer,
// and report renderer, making the main package cleaner and more focused
// on CLI parsing and orchestration.
package application
