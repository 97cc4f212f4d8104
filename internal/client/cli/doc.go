// Package cli provides the interactive StackQuery command-line client.
//
// NewApp wires configuration, the local SQLite database, the gRPC gateway
// and document clients, the session store, the question browser and the
// vote resolver. Run restores the saved session, verifies it with the
// server and then starts the REPL, which blocks until the user exits.
//
// Commands:
//   - register, login, logout, whoami
//   - ask                       post a question (signed in)
//   - questions [page]          newest questions with vote and answer counts
//   - votes [page] [upvoted|downvoted] [-u user-id]
//   - help, exit
package cli
