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

// Package performance contains helper functions relating to performance.
//
// Check() runs a headless machine for a fixed wall-clock duration and
// reports the achieved edge rate against the crystal frequency of the real
// hardware. It will optionally generate profiling information.
//
// RunProfiler() can be used on its own to generate the various profile
// types. It places no limit on how long the program runs for, so it is
// useful for more real-world situations.
package performance
