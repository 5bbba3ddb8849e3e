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

package performance

import "github.com/jetsetilly/fibula/hardware/clocks"

// CalcEPS takes a number of clock edges and a duration (in seconds) and
// returns the edges-per-second along with that rate as a percentage of the
// crystal frequency of the real hardware.
func CalcEPS(numEdges uint64, duration float64) (eps float64, accuracy float64) {
	eps = float64(numEdges) / duration
	accuracy = 100 * eps / float64(clocks.Crystal)
	return eps, accuracy
}
