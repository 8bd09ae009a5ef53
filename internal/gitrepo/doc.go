// Package gitrepo wraps the git CLI for the narrow queries and mutations the
// pipeline needs: commit count, working-tree change detection, and the
// commit/push pair that lands reconciled state.
//
// Command execution goes through an injectable Executor so decision logic can
// be tested without a real repository.
package gitrepo
