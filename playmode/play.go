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

// Package playmode is the "just run it" mode of the simulation. The machine
// is created, wired to the GUI and run at the pace set by the realtime
// preference. Button input arrives from the GUI over the userinput channel.
//
// The recording, playback, stimulus and wavline options are all wired in
// before the machine starts. The panel has a single playback slot so the
// options that would occupy it are mutually exclusive.
package playmode

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/fibula/debugger/govern"
	"github.com/jetsetilly/fibula/environment"
	"github.com/jetsetilly/fibula/gui"
	"github.com/jetsetilly/fibula/hardware"
	"github.com/jetsetilly/fibula/hardware/lightbar"
	"github.com/jetsetilly/fibula/hardware/panel"
	"github.com/jetsetilly/fibula/logger"
	"github.com/jetsetilly/fibula/recorder"
	"github.com/jetsetilly/fibula/stimulus"
	"github.com/jetsetilly/fibula/userinput"
	"github.com/jetsetilly/fibula/wavline"
)

// Window is the connection playmode requires of a GUI. As well as servicing
// feature requests the window renders the lightbar and mirrors panel events
// with the button indicator.
type Window interface {
	gui.GUI
	lightbar.Renderer
	panel.EventRecorder
}

type playmode struct {
	fib *hardware.Fib
	scr Window

	controllers userinput.Controllers
	events      chan userinput.Event
	intChan     chan os.Signal

	// where the controllers send their deciphered events. either the panel
	// itself or the bounce wrapper
	handle userinput.HandleInput

	// event queues are not polled on every edge. see eventHandler()
	pump int
}

// Play creates a machine, wires it to the supplied window and runs it until
// the window is closed, the process is interrupted or an attached playback
// comes to an end.
func Play(scr Window, transcript string, newRecording bool, stimPath string, wavPath string, scale float32, uncapped bool) error {
	if newRecording && transcript != "" {
		return fmt.Errorf("playmode: the -record and -playback options cannot be used together")
	}
	if transcript != "" && stimPath != "" {
		return fmt.Errorf("playmode: the -playback and -stimulus options cannot be used together")
	}
	if stimPath != "" && recorder.IsPlaybackFile(stimPath) {
		return fmt.Errorf("playmode: %s is a recording transcript. use the -playback option", stimPath)
	}

	fib, err := hardware.NewFib(environment.MainEmulation, nil, nil)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	pl := &playmode{
		fib:     fib,
		scr:     scr,
		events:  make(chan userinput.Event, 10),
		intChan: make(chan os.Signal, 1),
		handle:  fib.Panel,
	}

	// the uncapped option overrides the realtime preference for this
	// session. nothing in playmode saves the preference back to disk
	if uncapped {
		err = fib.Env.Prefs.Realtime.Set(false)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
	}

	fib.Bar.AddRenderer(scr)
	fib.Panel.AttachEventRecorder(scr)

	err = scr.SetFeature(gui.ReqSetEmulationMode, govern.ModePlay)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	err = scr.SetFeature(gui.ReqSetEventChan, pl.events)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	if scale > 0 {
		err = scr.SetFeature(gui.ReqSetScale, scale)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
	}

	if newRecording {
		n := time.Now()
		timestamp := fmt.Sprintf("%04d%02d%02d_%02d%02d%02d",
			n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second())

		rec, err := recorder.NewRecorder(fmt.Sprintf("recording_%s", timestamp), fib)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		// the final digest line is written by rec.End(). deferring it means
		// it happens however the run loop comes to an end
		defer func() {
			err := rec.End()
			if err != nil {
				logger.Log(logger.Allow, "playmode", err.Error())
			}
		}()
	}

	if transcript != "" {
		plb, err := recorder.NewPlayback(transcript)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		err = plb.AttachToFib(fib)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
	}

	if stimPath != "" {
		stim, err := stimulus.FromFile(fib.Env, stimPath)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		ply, err := stimulus.NewPlayer(stim)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		err = ply.AttachToFib(fib)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}
	}

	// live button input goes through the bounce synthesiser when nothing
	// else is occupying the panel's playback slot. a recording made with
	// synthesised bounce contains the bounced event train, meaning the
	// playback does not depend on the bounce preferences being the same
	if transcript == "" && stimPath == "" && fib.Env.Prefs.SynthBounce.Get().(bool) {
		bnc := stimulus.NewBouncer(fib.Env, stimulus.DefaultSynthesizeOpts())

		err = bnc.AttachToFib(fib)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		pl.handle = &bouncedInput{pan: fib.Panel, bnc: bnc}
	}

	if wavPath != "" {
		wl, err := wavline.New(fib.Env, wavPath)
		if err != nil {
			return fmt.Errorf("playmode: %w", err)
		}

		fib.SetLineProbe(wl.Probe)

		defer func() {
			err := wl.End()
			if err != nil {
				logger.Log(logger.Allow, "playmode", err.Error())
			}
		}()
	}

	err = scr.SetFeature(gui.ReqSetVisibility, true)
	if err != nil {
		return fmt.Errorf("playmode: %w", err)
	}

	// redirecting the interrupt signal means ctrl-c ends the run loop
	// normally and the deferred functions above get to run
	signal.Notify(pl.intChan, os.Interrupt)
	defer signal.Stop(pl.intChan)

	err = fib.Run(pl.eventHandler)
	if err != nil {
		if errors.Is(err, panel.ErrPowerOff) {
			return nil
		}
		if errors.Is(err, recorder.ErrPlaybackEnded) {
			return nil
		}
		return fmt.Errorf("playmode: %w", err)
	}

	return nil
}
