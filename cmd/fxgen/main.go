package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/xpira/linguafx/internal/logging"
	"github.com/xpira/linguafx/internal/soundfx"
	"github.com/xpira/linguafx/internal/synth"
	"github.com/xpira/linguafx/internal/wav"
)

var (
	outDir     = flag.String("out", "sounds", "Output directory for rendered WAV files")
	setPath    = flag.String("set", "", "Sound set YAML file (defaults to the built-in set)")
	sampleRate = flag.Int("rate", wav.DefaultSampleRate, "Sample rate in Hz")
)

func main() {
	flag.Parse()

	logger := logging.New("info", "text")

	specs := soundfx.DefaultSet()
	if *setPath != "" {
		var err error
		specs, err = soundfx.LoadSet(*setPath)
		if err != nil {
			logger.Error("failed to load sound set", "error", err, "path", *setPath)
			os.Exit(1)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "error", err, "dir", *outDir)
		os.Exit(1)
	}

	for _, spec := range specs {
		samples, err := synth.Synthesize(spec, *sampleRate)
		if err != nil {
			logger.Error("failed to synthesize tone", "error", err, "sound", spec.Name)
			os.Exit(1)
		}

		audio := wav.Encode(samples, *sampleRate)
		path := filepath.Join(*outDir, spec.Name+".wav")
		if err := os.WriteFile(path, audio.Data, 0o644); err != nil {
			logger.Error("failed to write WAV file", "error", err, "path", path)
			os.Exit(1)
		}

		logger.Info("rendered sound",
			"sound", spec.Name,
			"path", path,
			"bytes", len(audio.Data),
			"waveform", spec.Waveform.String(),
		)
	}

	logger.Info("render complete", "sounds", len(specs), "dir", *outDir)
}
