// This file is part of Fibula.
//
// Fibula is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Fibula is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Fibula.  If not, see <https://www.gnu.org/licenses/>.

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/fibula/hardware/lightbar"
)

// every light change is written to the buffer as the edge count followed by
// the new state of the lights
const eventLength = 9

// the length of the buffer isn't really important so long as it holds a
// whole number of light events in addition to the chained digest value
const lightsBufferLength = (114 * eventLength) + sha1.Size

// to allow us to create digests on light streams longer than
// lightsBufferLength, we'll stuff the previous digest value into the first
// part of the buffer array and make sure we include it when we create the
// next digest value
const lightsBufferStart = sha1.Size

// Lights is an implementation of the lightbar.Renderer interface. It
// generates a SHA-1 value from the stream of light changes. It does not
// display the lights anywhere.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Lights struct {
	digest   [sha1.Size]byte
	buffer   []byte
	bufferCt int

	// edges are recorded relative to the edge count at creation. two
	// identical streams of lights hash to the same value no matter when in
	// the life of the machine they begin
	origin uint64
}

// NewLights is the preferred method of initialisation for the Lights type.
// The newly created instance registers itself with the supplied lightbar.
func NewLights(bar *lightbar.LightBar) (*Lights, error) {
	if bar == nil {
		return nil, fmt.Errorf("digest: lights: no lightbar")
	}

	dig := &Lights{}
	dig.buffer = make([]byte, lightsBufferLength)
	dig.bufferCt = lightsBufferStart
	dig.origin = bar.Edge()

	// register ourselves as a lightbar renderer
	bar.AddRenderer(dig)

	return dig, nil
}

// Hash implements the digest.Digest interface.
func (dig *Lights) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the digest.Digest interface.
func (dig *Lights) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// SetLights implements the lightbar.Renderer interface.
func (dig *Lights) SetLights(edge uint64, lights uint8) error {
	binary.BigEndian.PutUint64(dig.buffer[dig.bufferCt:], edge-dig.origin)
	dig.buffer[dig.bufferCt+8] = lights

	dig.bufferCt += eventLength

	if dig.bufferCt >= lightsBufferLength {
		return dig.Flush()
	}

	return nil
}

// Flush digests the contents of the light buffer ahead of it being full.
// There is no need to call this function except at the end of a simulation,
// when any events still in the buffer must be folded into the hash.
func (dig *Lights) Flush() error {
	dig.digest = sha1.Sum(dig.buffer)
	n := copy(dig.buffer, dig.digest[:])
	if n != len(dig.digest) {
		return fmt.Errorf("digest: lights: digest error during flush")
	}
	dig.bufferCt = lightsBufferStart
	return nil
}
