// Prints the contents of a MOD file: header summary, instrument table and
// optionally the pattern data.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/evansm7/lmp"
	"github.com/fatih/color"
)

var (
	flagVerbose  = flag.Int("v", 0, "debug level passed to the loader")
	flagPatterns = flag.Bool("patterns", false, "dump pattern data as well")

	heading = color.New(color.FgHiBlue).SprintfFunc()
	cyan    = color.New(color.FgCyan).SprintfFunc()
	magenta = color.New(color.FgMagenta).SprintfFunc()
	yellow  = color.New(color.FgYellow).SprintfFunc()
)

// Amiga period values for C-1 through B-3, used only to label periods in
// the pattern dump.
var periodTable = []int{
	856, 808, 762, 720, 678, 640, 604, 570, 538, 508, 480, 453,
	428, 404, 381, 360, 339, 320, 302, 285, 269, 254, 240, 226,
	214, 202, 190, 180, 170, 160, 151, 143, 135, 127, 120, 113,
}

var noteNames = []string{
	"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-",
}

func noteStrFromPeriod(period int) string {
	for i, prd := range periodTable {
		if prd == period {
			return fmt.Sprintf("%s%d", noteNames[i%12], i/12+1)
		}
	}

	return "   "
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("moddump: ")
	flag.Parse()

	if len(flag.Args()) == 0 {
		log.Fatal("Missing song filename")
	}

	songF, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if *flagVerbose > 0 {
		lmp.SetDebugWriter(os.Stderr, *flagVerbose)
	}

	song, err := lmp.NewSongFromBytes(songF)
	if err != nil {
		log.Fatal(err)
	}

	variant := "15-instrument SoundTracker"
	if song.ThirtyOne {
		variant = "31-instrument ProTracker"
	}
	fmt.Printf("%s %s (%s)\n", heading("Title:"), song.Title, variant)
	fmt.Printf("%s %d positions, %d patterns\n", heading("Song:"),
		song.SequenceLength, song.NumPatterns())
	fmt.Printf("%s %v\n\n", heading("Sequence:"), song.Sequence[:song.SequenceLength])

	fmt.Println(heading("## Name                   Len  Vol Loop"))
	for i, inst := range song.Instruments {
		loop := "-"
		if inst.LoopLen > 0 {
			loop = fmt.Sprintf("%d+%d", inst.LoopStart, inst.LoopLen)
		}
		fmt.Printf("%02d %-22s %5d %3d %s\n", i+1, inst.Name, inst.Length, inst.Volume, loop)
	}

	if !*flagPatterns {
		return
	}

	for pat := 0; pat < song.NumPatterns(); pat++ {
		fmt.Printf("\n%s\n", heading("Pattern %d", pat))
		for row := 0; row < 64; row++ {
			fmt.Printf("%02X: ", row)
			for ch := 0; ch < 4; ch++ {
				n := song.NoteAt(pat, row, ch)
				fmt.Printf("%4d(%s) %s %s%s", n.Period, noteStrFromPeriod(n.Period),
					cyan("%02X", n.Instrument), magenta("%X", n.Command), yellow("%02X", n.Param))
				if ch < 3 {
					fmt.Print("|")
				}
			}
			fmt.Println()
		}
	}
}
