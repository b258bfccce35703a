// Package media defines the value types shared by the capture, encoder,
// muxer, and recorder layers: output container formats, stream kinds,
// announced track formats, and encoded chunk handles.
package media
