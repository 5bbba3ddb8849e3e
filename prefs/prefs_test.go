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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/fibula/prefs"
	"github.com/jetsetilly/fibula/test"
)

func TestTypes(t *testing.T) {
	var b prefs.Bool
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectSuccess(t, b.Set(true))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("TRUE"))
	test.ExpectEquality(t, b.Get().(bool), true)
	test.ExpectSuccess(t, b.Set("no"))
	test.ExpectEquality(t, b.Get().(bool), false)
	test.ExpectFailure(t, b.Set(100))

	var i prefs.Int
	test.ExpectSuccess(t, i.Set(42))
	test.ExpectEquality(t, i.Get().(int), 42)
	test.ExpectSuccess(t, i.Set("43"))
	test.ExpectEquality(t, i.Get().(int), 43)
	test.ExpectFailure(t, i.Set("forty-four"))

	var f prefs.Float
	test.ExpectSuccess(t, f.Set(1.5))
	test.ExpectEquality(t, f.Get().(float64), 1.5)
	test.ExpectEquality(t, f.String(), "1.500")

	var s prefs.String
	test.ExpectSuccess(t, s.Set("hello"))
	test.ExpectEquality(t, s.Get().(string), "hello")
}

func TestHook(t *testing.T) {
	var b prefs.Bool
	var hooked bool

	b.SetHook(func(v prefs.Value) error {
		hooked = v.(bool)
		return nil
	})

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, hooked)
}

func TestSaveLoad(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.prefs")

	dsk, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)

	var b prefs.Bool
	var i prefs.Int
	test.ExpectSuccess(t, dsk.Add("test.bool", &b))
	test.ExpectSuccess(t, dsk.Add("test.int", &i))

	// duplicate keys are not allowed
	test.ExpectFailure(t, dsk.Add("test.bool", &b))

	test.ExpectSuccess(t, b.Set(true))
	test.ExpectSuccess(t, i.Set(99))
	test.ExpectSuccess(t, dsk.Save())

	// a second Disk instance sharing the file sees the saved values
	dsk2, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)

	var b2 prefs.Bool
	var i2 prefs.Int
	test.ExpectSuccess(t, dsk2.Add("test.bool", &b2))
	test.ExpectSuccess(t, dsk2.Add("test.int", &i2))
	test.ExpectSuccess(t, dsk2.Load())
	test.ExpectEquality(t, b2.Get().(bool), true)
	test.ExpectEquality(t, i2.Get().(int), 99)
}

func TestForeignEntriesPreserved(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "test.prefs")

	// first instance owns one key
	dsk, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("first.key", &s))
	test.ExpectSuccess(t, s.Set("kept"))
	test.ExpectSuccess(t, dsk.Save())

	// second instance owns a different key and saves. the first key must
	// survive
	dsk2, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)
	var i prefs.Int
	test.ExpectSuccess(t, dsk2.Add("second.key", &i))
	test.ExpectSuccess(t, i.Set(1))
	test.ExpectSuccess(t, dsk2.Save())

	dsk3, err := prefs.NewDisk(pth)
	test.DemandSuccess(t, err)
	var s3 prefs.String
	test.ExpectSuccess(t, dsk3.Add("first.key", &s3))
	test.ExpectSuccess(t, dsk3.Load())
	test.ExpectEquality(t, s3.Get().(string), "kept")
}
