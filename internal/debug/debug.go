// Package debug contains helpers for inspecting traffic between peers.
package debug

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/dcrodman/broadside"
)

// FrameDumper writes a hex dump of every frame that passes through a
// connection to the debug log.
type FrameDumper struct {
	// Remote address of the peer, used to tag the log lines.
	Peer string
}

// Sent logs a frame written to the peer.
func (d *FrameDumper) Sent(frame []byte) { d.dump("sent", frame) }

// Received logs a frame read from the peer.
func (d *FrameDumper) Received(frame []byte) { d.dump("received", frame) }

func (d *FrameDumper) dump(direction string, frame []byte) {
	if !broadside.Log.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	broadside.Log.WithFields(logrus.Fields{
		"peer":      d.Peer,
		"direction": direction,
		"size":      len(frame),
	}).Debug("frame\n" + spew.Sdump(frame))
}
