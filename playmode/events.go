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

package playmode

import (
	"fmt"

	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/stimulus"
	"github.com/jetsetilly/fibula/userinput"
)

// bouncedInput diverts button transitions through the bounce synthesiser on
// their way to the panel. every other event type passes straight through.
type bouncedInput struct {
	pan *panel.Panel
	bnc *stimulus.Bouncer
}

func (b *bouncedInput) HandleEvent(ev panel.Event, d panel.EventData) error {
	if ev == panel.ButtonSet {
		level, ok := d.(bool)
		if !ok {
			return fmt.Errorf("playmode: unexpected data for %v event (%T)", ev, d)
		}
		b.bnc.Post(level)
		return nil
	}
	return b.pan.HandleEvent(ev, d)
}

func (pl *playmode) userInputHandler(ev userinput.Event) error {
	err := pl.controllers.HandleUserInput(ev, pl.handle)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}
	return nil
}

// eventHandler is the continue check for the machine's run loop.
func (pl *playmode) eventHandler() (govern.State, error) {
	// polling a select statement on every edge is measurably slow at this
	// machine's clock rate. a quarter of the PerformanceBrake value keeps
	// input latency well under video frame rates
	pl.pump++
	if pl.pump < hardware.PerformanceBrake/4 {
		return govern.Running, nil
	}
	pl.pump = 0

	select {
	case <-pl.intChan:
		return govern.Ending, nil

	case ev := <-pl.events:
		err := pl.userInputHandler(ev)
		if pl.controllers.Quit {
			return govern.Ending, err
		}
		return govern.Running, err

	default:
	}

	return govern.Running, nil
}
