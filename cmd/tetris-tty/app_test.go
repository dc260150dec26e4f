package main

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/tetris"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func screenLine(screen tcell.Screen, y, from, to int) string {
	var sb strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawBoard(t *testing.T) {
	screen := newTestScreen(t, 40, 10)

	b := tetris.NewBoard(3, 3)
	b.Place(tetris.Pieces().Get(tetris.Pyramid), 0, 0)
	b.Commit()

	drawBoard(screen, b, 1, 2)

	assert.Equal(t, "|      |", screenLine(screen, 2, 1, 9))
	assert.Equal(t, "|  []  |", screenLine(screen, 3, 1, 9))
	assert.Equal(t, "|[][][]|", screenLine(screen, 4, 1, 9))
	assert.Equal(t, "--------", screenLine(screen, 5, 1, 9))

	_, _, style, _ := screen.GetContent(4, 3)
	assert.Equal(t, cellStyle, style)
	_, _, style, _ = screen.GetContent(1, 3)
	assert.Equal(t, borderStyle, style)
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		cmd    command
		action game.Action
	}{
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), cmdAction, game.ActionLeft},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), cmdAction, game.ActionRight},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), cmdAction, game.ActionRotate},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), cmdAction, game.ActionDown},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), cmdAction, game.ActionDrop},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), cmdQuit, 0},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), cmdQuit, 0},
		{"r", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), cmdReset, 0},
		{"p", tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), cmdPause, 0},
		{"x", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), cmdNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, action := keyCommand(tt.ev)
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.action, action)
		})
	}
}

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	logger, _ := test.NewNullLogger()

	cfg := game.DefaultConfig()
	cfg.Width = 6
	cfg.Height = 8
	cfg.TopSpace = 0
	cfg.Sequence = []tetris.Shape{tetris.Square}
	cfg.Logger = logger
	cfg.Debug = true

	s, err := newPlayerSession(cfg)
	require.NoError(t, err)

	screen := newTestScreen(t, 40, 12)
	return &App{screen: screen, session: s, log: logger}, screen
}

func TestAppHandlesKeys(t *testing.T) {
	app, screen := newTestApp(t)
	key := func(k tcell.Key, r rune) bool {
		quit, err := app.handleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
		require.NoError(t, err)
		return quit
	}

	app.draw()
	assert.Equal(t, "|    [][]    |", screenLine(screen, 0, 0, 14))

	assert.False(t, key(tcell.KeyLeft, 0))
	assert.False(t, key(tcell.KeyRune, ' '))
	app.draw()
	assert.Equal(t, "|  [][]      |", screenLine(screen, 7, 0, 14))
	assert.Equal(t, "pieces 1", screenLine(screen, 1, 16, 24))

	assert.False(t, key(tcell.KeyRune, 'p'))
	assert.True(t, app.paused)
	assert.False(t, key(tcell.KeyRight, 0), "paused apps ignore moves")
	piece, x, _ := app.session.(*playerSession).Current()
	require.NotNil(t, piece)
	assert.Equal(t, 2, x)

	assert.False(t, key(tcell.KeyRune, 'r'))
	assert.False(t, app.paused)
	pieces, _ := app.session.Score()
	assert.Equal(t, int64(0), pieces)

	assert.True(t, key(tcell.KeyRune, 'q'))
}

func TestAppShowsGameOver(t *testing.T) {
	app, screen := newTestApp(t)

	for !app.session.Over() {
		_, err := app.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
		require.NoError(t, err)
	}
	app.draw()
	assert.Equal(t, "GAME OVER", screenLine(screen, 4, 16, 25))

	_, _, style, _ := screen.GetContent(16, 4)
	assert.Equal(t, alertStyle, style)
}

func TestRunQuitsOnKey(t *testing.T) {
	app, screen := newTestApp(t)
	app.interval = time.Hour

	errc := make(chan error, 1)
	go func() { errc <- app.run() }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestPollEventsStopsAfterFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	events := make(chan tcell.Event, 1)
	stop := make(chan struct{})
	defer close(stop)
	done := make(chan struct{})
	go func() {
		pollEvents(screen, events, stop)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	select {
	case ev := <-events:
		key, ok := ev.(*tcell.EventKey)
		require.True(t, ok)
		assert.Equal(t, 'x', key.Rune())
	case <-time.After(5 * time.Second):
		t.Fatal("no event forwarded")
	}

	screen.Fini()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller still running after Fini")
	}
}

func TestPollEventsStopsWhenNobodyListens(t *testing.T) {
	screen := newTestScreen(t, 10, 10)

	events := make(chan tcell.Event)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		pollEvents(screen, events, stop)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	close(stop)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller still running after stop")
	}
}
