package version

// Name is the application name used in logs and the API User-Agent.
const Name = "chessfluff"

// SourceURL points at the project repository and is included in the
// User-Agent so chess.com can identify the client.
const SourceURL = "https://github.com/jonathanfox5/chessfluff"

var (
	// Version is the current application version.
	// It should be populated by the build system (ldflags).
	Version = "1.1.0"
)
