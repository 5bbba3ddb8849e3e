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

// Package resources contains functions to prepare paths for fibula resources.
//
// The JoinPath() function returns the correct path to the resource
// directory/file specified in the arguments. It handles the creation of
// directories as required but does not otherwise touch or create files.
//
// The base path is a directory named ".fibula". If that directory exists in
// the current working directory it is used, which is convenient during
// development. Otherwise the directory is rooted in the user's home
// directory:
//
//	/home/user/.fibula/
//
// The FIBULA_HOME environment variable overrides the base path entirely.
// This is intended for test harnesses that must not touch the real
// configuration.
package resources
