// Package capture defines the audio capture collaborators the recorder
// consumes: a raw sample source with a start/stop/release lifecycle, a
// device probe used for sample-rate selection, and a udev hotplug
// monitor for sound-card add/remove events.
package capture
