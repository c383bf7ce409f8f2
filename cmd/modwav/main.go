// Renders a MOD file to a 16-bit WAV file.

package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/evansm7/lmp"
	"github.com/evansm7/lmp/cmd/internal/config"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	flagHz     = flag.Int("hz", 44100, "output hz")
	flagMode   = flag.String("mode", "soft", "mixdown: mono, hard or soft stereo")
	flagWavOut = flag.String("wav", "", "output WAVE file")
	flagMaxSec = flag.Int("maxsec", 300, "maximum seconds to render, for songs that loop forever")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("modwav: ")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("Missing MOD filename")
	}
	if *flagWavOut == "" {
		log.Fatal("No -wav option provided")
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
	numChans := 2
	if mode == lmp.MixMono {
		numChans = 1
	}

	player := lmp.NewPlayer(song, *flagHz)
	player.SetOption(lmp.OptionSongLoop, false)

	wavF, err := os.Create(*flagWavOut)
	if err != nil {
		log.Fatal(err)
	}
	defer wavF.Close()

	enc := wav.NewEncoder(wavF, *flagHz, 16, numChans, 1)
	defer enc.Close()

	// Listen for SIGINT to allow a clean exit with a valid WAV header.
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT)

	const chunk = 2048
	out := make([]int16, chunk)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: *flagHz},
		SourceBitDepth: 16,
		Data:           make([]int, chunk),
	}

	maxChunks := *flagMaxSec * *flagHz * numChans / chunk
	for i := 0; i < maxChunks; i++ {
		select {
		case <-sigch:
			return
		default:
		}

		more := player.FillBuffer(out, mode)
		for j, s := range out {
			buf.Data[j] = int(s)
		}
		if err := enc.Write(buf); err != nil {
			log.Fatal(err)
		}
		if !more {
			break
		}
	}
}
