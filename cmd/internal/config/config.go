package config

import (
	"fmt"

	"github.com/evansm7/lmp"
	"github.com/evansm7/lmp/internal/comb"
)

// ReverbFromFlag initializes a comb.Reverber according to the command line
// flag value.
func ReverbFromFlag(reverb string, sampleRate int) (r comb.Reverber, err error) {
	switch reverb {
	case "light":
		// Small room
		r = comb.New(0.3, 40, sampleRate)
	case "medium":
		// Living room/small hall
		r = comb.New(0.5, 70, sampleRate)
	case "hall":
		// Concert hall
		r = comb.New(0.7, 110, sampleRate)
	case "none":
		r = comb.NewPassThrough(64 * 1024)
	default:
		err = fmt.Errorf("unrecognized reverb setting %q", reverb)
	}

	return r, err
}

// MixModeFromFlag maps the -mode flag value onto a player mix mode.
func MixModeFromFlag(mode string) (lmp.MixMode, error) {
	switch mode {
	case "mono":
		return lmp.MixMono, nil
	case "hard":
		return lmp.MixStereoHard, nil
	case "soft":
		return lmp.MixStereoSoft, nil
	}
	return lmp.MixMono, fmt.Errorf("unrecognized mix mode %q", mode)
}
