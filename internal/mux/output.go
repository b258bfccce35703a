package mux

import "os"

// OutputOptions selects where a recording is written. The concrete types
// are FileOutput, FileDescriptorOutput, and CatalogOutput; resolution to a
// Destination happens when the recording starts, not at prepare time.
type OutputOptions interface {
	outputOptions()
}

// FileOutput writes the recording to a filesystem path.
type FileOutput struct {
	Path string
}

func (FileOutput) outputOptions() {}

// FileDescriptorOutput writes the recording to an already open file. The
// caller keeps ownership of the handle; the muxer will not close it.
type FileDescriptorOutput struct {
	File *os.File
}

func (FileDescriptorOutput) outputOptions() {}

// CatalogOutput inserts an entry into the content catalog and writes to
// the path the catalog resolves. DisplayName titles the catalog entry.
type CatalogOutput struct {
	DisplayName string
}

func (CatalogOutput) outputOptions() {}
