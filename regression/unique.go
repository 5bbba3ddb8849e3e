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

package regression

import (
	"fmt"
	"time"

	"github.com/jetsetilly/fibula/resources"
)

// create a filename in the regression scripts directory that (assuming a
// functioning clock) should not collide with any existing file. Note that
// the function does not test for this.
func uniqueFilename(prepend string) (string, error) {
	n := time.Now()
	timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d", n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())
	return resources.JoinPath(regressionPath, regressionScripts, fmt.Sprintf("%s_%s", prepend, timestamp))
}
