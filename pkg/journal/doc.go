// Package journal records import sessions.
//
// Every run of the importer produces one Entry: what was imported, how long
// it took, what it produced, and whether it succeeded. Entries answer the
// operational questions a level pipeline asks after the fact ("when did
// this map last import cleanly, and what changed").
//
// Two backends implement the Journal interface. MemoryJournal keeps entries
// in process for tests and one-shot runs; SQLiteJournal persists them so
// history survives restarts. The `mapforge history` command reads whichever
// backend the config names.
package journal
