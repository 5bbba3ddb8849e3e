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

// Package test contains helper functions to remove common boilerplate and to
// make testing easier.
//
// The Expect functions test a value against an expectation and mark the test
// as having failed if the expectation is not met. The Demand functions do the
// same but any failure is a test fatality.
//
// It is worth describing how the success and failure expectations handle the
// nil type because it is not obvious. The nil type is considered a success,
// so it will cause ExpectFailure to fail and ExpectSuccess to succeed. This
// follows from how errors usually work in Go, where nil indicates no error.
//
// All functions accept a trailing list of tags. Tags are included in any
// failure message and help to identify the failing case when a test makes
// many similar expectations in a loop.
package test
