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

// Package regression facilitates the regression testing of the simulation.
// By adding test results to a database, the tests can be rerun automatically
// and checked for consistancy.
//
// Two types of test are supported. First the digest test. This test runs the
// machine headless for a set number of button presses, driven by a
// synthesized stimulus, and stores a hash of everything the lightbar showed
// along the way.
//
// The second test is the playback test. This replays panel input from a
// previously recorded session. Recording transcripts end with a hash of the
// lights seen during the recording and so the replay will succeed or fail
// according to whether the machine still behaves the same way. The
// regression test automates the process.
//
// The digest type is useful for checking the core Fibonacci program against
// a standard press pattern. The playback type is more useful for input
// timing oddities found in the wild, such as a press held across a reset.
package regression
