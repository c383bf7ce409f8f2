// Plays a MOD file through the default audio device using oto. Unlike
// modplay this has no UI at all; it simply hands the player's PCM byte
// stream to an oto player and waits.

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/evansm7/lmp"
	"github.com/evansm7/lmp/cmd/internal/config"
)

var (
	flagHz     = flag.Int("hz", 44100, "output hz")
	flagMode   = flag.String("mode", "soft", "mixdown: mono, hard or soft stereo")
	flagNoLoop = flag.Bool("noloop", false, "stop at the end of the song instead of looping")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("modoto: ")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("Missing MOD filename")
	}

	modF, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	song, err := lmp.NewSongFromBytes(modF)
	if err != nil {
		log.Fatal(err)
	}

	mode, err := config.MixModeFromFlag(*flagMode)
	if err != nil {
		log.Fatal(err)
	}

	player := lmp.NewPlayer(song, *flagHz)
	player.SetOption(lmp.OptionSongLoop, !*flagNoLoop)

	var options oto.NewContextOptions
	options.SampleRate = *flagHz
	options.ChannelCount = 2
	if mode == lmp.MixMono {
		options.ChannelCount = 1
	}
	options.Format = oto.FormatSignedInt16LE

	ctx, ready, err := oto.NewContext(&options)
	if err != nil {
		log.Fatal(err)
	}
	<-ready

	otoPlayer := ctx.NewPlayer(lmp.NewPCMStream(player, mode))
	otoPlayer.SetBufferSize(*flagHz * options.ChannelCount * 2 / 10)
	otoPlayer.Play()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)

	if len(song.Title) > 0 {
		log.Printf("Playing %q", song.Title)
	}

	for otoPlayer.IsPlaying() {
		select {
		case <-sigch:
			otoPlayer.Close()
			return
		case <-time.After(50 * time.Millisecond):
		}
		if err := otoPlayer.Err(); err != nil {
			log.Fatal(err)
		}
	}
}
