// Package catalog is the sqlite-backed content store recordings can
// target as an output destination. Inserting an entry resolves a writable
// path and a camrec:// URI; finalization stamps the entry with the
// recording's outcome. A directory lock keeps the catalog single-writer.
package catalog
