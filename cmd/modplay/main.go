package main

import (
	"flag"
	"log"
	"os"

	"github.com/evansm7/lmp"
	"github.com/evansm7/lmp/cmd/internal/config"
)

var (
	flagHz     = flag.Int("hz", 44100, "output hz")
	flagMode   = flag.String("mode", "soft", "mixdown: mono, hard or soft stereo")
	flagStart  = flag.Int("start", 0, "starting position in the song sequence")
	flagNoLoop = flag.Bool("noloop", false, "stop at the end of the song instead of looping")
	flagReverb = flag.String("reverb", "light", "choose from light, medium, hall or none")
	flagNoUI   = flag.Bool("noui", false, "turn off all UI, mostly useful in development")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("modplay: ")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("Missing song filename")
	}

	songF, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	song, err := lmp.NewSongFromBytes(songF)
	if err != nil {
		log.Fatal(err)
	}

	mode, err := config.MixModeFromFlag(*flagMode)
	if err != nil {
		log.Fatal(err)
	}

	player := lmp.NewPlayer(song, *flagHz)
	player.SetOption(lmp.OptionSongLoop, !*flagNoLoop)
	if *flagStart > 0 {
		player.SetPosition(*flagStart)
	}

	rvb, err := config.ReverbFromFlag(*flagReverb, *flagHz)
	if err != nil {
		log.Fatal(err)
	}

	play(player, mode, rvb)
}
