package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"github.com/evansm7/lmp"
	"github.com/evansm7/lmp/internal/comb"
	"github.com/fatih/color"
	"github.com/gordonklaus/portaudio"
)

var (
	white   = color.New(color.FgWhite).SprintfFunc()
	cyan    = color.New(color.FgCyan).SprintfFunc()
	magenta = color.New(color.FgMagenta).SprintfFunc()
	yellow  = color.New(color.FgYellow).SprintfFunc()
	blue    = color.New(color.FgHiBlue).SprintFunc()
)

const (
	escape     = "\x1b["
	hideCursor = escape + "?25l"
	showCursor = escape + "?25h"
)

func play(player *lmp.Player, mode lmp.MixMode, reverb comb.Reverber) {
	if err := portaudio.Initialize(); err != nil {
		log.Fatal(err)
	}

	outChans := 2
	if mode == lmp.MixMono {
		outChans = 1
	}

	playing := true
	scratch := make([]int16, 16*1024)
	streamCB := func(out []int16) {
		if !playing {
			clear(out)
			return
		}
		sc := scratch[:len(out)]
		playing = player.FillBuffer(sc, mode)
		reverb.InputSamples(sc)
		n := reverb.GetAudio(out)
		clear(out[n:])
	}

	stream, err := portaudio.OpenDefaultStream(0, outChans, float64(*flagHz), 756/2, streamCB)
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	stream.Start()
	defer stream.Stop()

	var uiw io.Writer = os.Stdout
	if *flagNoUI {
		uiw = io.Discard
	}

	stopFn := func() {
		playing = false
		stream.Stop()
		portaudio.Terminate()

		fmt.Fprint(uiw, showCursor)
		os.Exit(0)
	}

	sigch := make(chan os.Signal, 5)
	signal.Notify(sigch, syscall.SIGINT)
	go func() {
		for range sigch {
			stopFn()
		}
	}()

	go func() {
		keyboard.Listen(func(key keys.Key) (stop bool, err error) {
			switch key.Code {
			case keys.CtrlC, keys.Escape:
				stopFn()
			case keys.Left:
				st := player.State()
				if st.Position > 0 {
					player.SetPosition(st.Position - 1)
				}
			case keys.Right:
				st := player.State()
				player.SetPosition(st.Position + 1) // ignored off the end
			case keys.RuneKey:
				if key.Runes[0] == 'q' {
					stopFn()
				}
			}
			return false, nil
		})
	}()

	song := player.Song

	fmt.Fprint(uiw, hideCursor)
	if len(song.Title) > 0 {
		fmt.Fprintln(uiw, song.Title)
	}

	var last lmp.PlayerState
	first := true
	for playing {
		state := player.State()
		if !first && state.Position == last.Position && state.Row == last.Row {
			continue
		}
		first = false
		last = state

		fmt.Fprintf(uiw, "%s %02X/3F %s %02X/%02X %s %02d %s %3d\n",
			blue("row"), state.Row, blue("pos"), state.Position, player.Length(),
			blue("speed"), state.Speed, blue("bpm"), state.Tempo)

		// The row about to play, one cell per channel.
		for ch := 0; ch < 4; ch++ {
			n := song.NoteAt(state.Pattern, state.Row, ch)
			fmt.Fprint(uiw, white("%4d", n.Period), " ", cyan("%2X", n.Instrument), " ",
				magenta("%X", n.Command), yellow("%02X", n.Param))
			if ch < 3 {
				fmt.Fprint(uiw, "|")
			}
		}
		fmt.Fprintln(uiw)

		// Active instruments
		for ci, cs := range state.Channels {
			mark := ' '
			if cs.On {
				mark = '■'
			}
			name := ""
			if cs.On && cs.Instrument < len(song.Instruments) {
				name = song.Instruments[cs.Instrument].Name
			}
			fmt.Fprintf(uiw, "%d%c %-24s", ci+1, mark, name)
			if ci&1 == 1 {
				fmt.Fprintln(uiw)
			}
		}

		fmt.Fprintf(uiw, escape+"4F") // back up to the state line
	}

	fmt.Fprint(uiw, showCursor)
}
