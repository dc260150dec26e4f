package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	cellStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
	textStyle   = tcell.StyleDefault
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// App runs a session against a terminal screen.
type App struct {
	screen   tcell.Screen
	session  session
	interval time.Duration
	paused   bool
	log      logrus.FieldLogger
}

// command is what a key press asks the app to do.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdReset
	cmdPause
	cmdAction
)

// keyCommand decodes a key press.
func keyCommand(ev *tcell.EventKey) (command, game.Action) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit, 0
	case tcell.KeyLeft:
		return cmdAction, game.ActionLeft
	case tcell.KeyRight:
		return cmdAction, game.ActionRight
	case tcell.KeyUp:
		return cmdAction, game.ActionRotate
	case tcell.KeyDown:
		return cmdAction, game.ActionDown
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return cmdAction, game.ActionDrop
		case 'q':
			return cmdQuit, 0
		case 'r':
			return cmdReset, 0
		case 'p':
			return cmdPause, 0
		}
	}
	return cmdNone, 0
}

func (a *App) run() error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	stop := make(chan struct{})
	defer close(stop)
	go pollEvents(a.screen, eventChan, stop)

	a.draw()
	for {
		select {
		case ev := <-eventChan:
			quit, err := a.handleEvent(ev)
			if quit || err != nil {
				return err
			}
		case <-ticker.C:
			if a.paused || a.session.Over() {
				continue
			}
			if err := a.session.Tick(); err != nil {
				return err
			}
		}
		a.draw()
	}
}

func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		cmd, action := keyCommand(ev)
		switch cmd {
		case cmdQuit:
			return true, nil
		case cmdReset:
			a.session.Reset()
			a.paused = false
			a.log.Debug("reset")
		case cmdPause:
			a.paused = !a.paused
		case cmdAction:
			if !a.paused && !a.session.Over() {
				return false, a.session.Apply(action)
			}
		}
	}
	return false, nil
}

// pollEvents forwards screen events until the screen is finalized or stop
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, stop <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func (a *App) draw() {
	a.screen.Clear()
	pieces, rows := a.session.Score()
	status := []string{
		fmt.Sprintf("pieces %d", pieces),
		fmt.Sprintf("rows   %d", rows),
	}
	switch {
	case a.session.Over():
		status = append(status, "", "GAME OVER", "r to restart")
	case a.paused:
		status = append(status, "", "PAUSED")
	}
	drawBoard(a.screen, a.session.Board(), 0, 0)
	drawStatus(a.screen, status, 2*a.session.Board().Width()+4, 1)
	a.screen.Show()
}

// drawBoard renders b with its top-left border corner at (left, top). Each
// cell takes two columns.
func drawBoard(screen tcell.Screen, b *tetris.Board, left, top int) {
	right := left + 2*b.Width() + 1
	for row := 0; row < b.Height(); row++ {
		y := b.Height() - 1 - row
		sy := top + row
		screen.SetContent(left, sy, '|', nil, borderStyle)
		for x := 0; x < b.Width(); x++ {
			sx := left + 1 + 2*x
			if b.Filled(x, y) {
				screen.SetContent(sx, sy, '[', nil, cellStyle)
				screen.SetContent(sx+1, sy, ']', nil, cellStyle)
			} else {
				screen.SetContent(sx, sy, ' ', nil, textStyle)
				screen.SetContent(sx+1, sy, ' ', nil, textStyle)
			}
		}
		screen.SetContent(right, sy, '|', nil, borderStyle)
	}
	for sx := left; sx <= right; sx++ {
		screen.SetContent(sx, top+b.Height(), '-', nil, borderStyle)
	}
}

func drawStatus(screen tcell.Screen, lines []string, left, top int) {
	for i, line := range lines {
		style := textStyle
		if line == "GAME OVER" {
			style = alertStyle
		}
		for j, r := range []rune(line) {
			screen.SetContent(left+j, top+i, r, nil, style)
		}
	}
}
