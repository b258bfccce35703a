// Package encoder defines the contract between the recorder and the
// underlying codec engines. Engines are external collaborators with a
// start/pause/stop/release lifecycle that deliver output through a small
// closed set of callbacks dispatched onto an executor the recorder owns.
//
// Synthetic is an in-process software engine producing placeholder chunks;
// it backs the CLI demo recording and the test suite.
package encoder
