// Package importer runs the import pipeline end to end: parse a map source,
// assemble the scene through the configured collaborators, and record the
// run in the journal, metrics, and trace stream.
//
// An Importer is safe for concurrent use; every Run gets its own session id,
// task registry, and journal entry. The package also provides a debounced
// file watcher and a cron scheduler for keeping a scene in sync with a map
// file that keeps changing.
package importer
