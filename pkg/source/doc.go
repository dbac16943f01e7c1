// Package source resolves map files for import.
//
// A Source turns a map name into a local path the parser can read.
// FileSource serves maps straight from a directory tree. GitSource clones
// (or reuses) a repository and serves maps from its worktree, optionally
// pinned to a branch or commit so level imports are reproducible.
package source
