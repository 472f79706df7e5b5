package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/cmd"
	"github.com/bruv1700/fox3osc/engine"
	"github.com/bruv1700/fox3osc/oto"
	"github.com/bruv1700/fox3osc/player"
	"github.com/bruv1700/fox3osc/version"
)

type rendered struct {
	filename string
	buffer   fox3osc.AudioBuffer
}

func main() {
	help := flag.Bool("h", false, "Show help.")
	patch := flag.String("patch", "init", "Preset name or .yml patch file to render with.")
	directory := flag.String("o", "", "Directory where to output all files. The directory and its parents are created if needed. By default, files are placed in the working directory.")
	play := flag.Bool("p", false, "Play the rendered files (default behaviour when no other output is defined).")
	rawOut := flag.Bool("r", false, "Output the rendered audio as .raw file.")
	wavOut := flag.Bool("w", false, "Output the rendered audio as .wav file.")
	pcm := flag.Bool("c", false, "Convert audio to 16-bit signed PCM when outputting.")
	sampleRate := flag.Int("rate", engine.DefaultRate, "Sample rate in Hz.")
	polyphony := flag.Int("polyphony", engine.DefaultPolyphony, "Number of voices.")
	seed := flag.Uint("seed", 0, "Seed of the noise and random waveforms; 0 uses the default seed.")
	gain := flag.Float64("gain", 1, "Output gain.")
	jobs := flag.Int("j", runtime.NumCPU(), "Number of files rendered in parallel.")
	versionFlag := flag.Bool("v", false, "Print version.")
	flag.Usage = printUsage
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}
	if !*rawOut && !*wavOut {
		*play = true
	}
	params, err := cmd.LoadPatch(*patch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load patch: %v\n", err)
		os.Exit(1)
	}
	var files []string
	for _, param := range flag.Args() {
		if info, err := os.Stat(param); err == nil && info.IsDir() {
			midfiles, err := filepath.Glob(filepath.Join(param, "*.mid"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not glob the path %v for mid files: %v\n", param, err)
				os.Exit(1)
			}
			files = append(files, midfiles...)
			continue
		}
		files = append(files, param)
	}
	output := func(filename, extension string, contents []byte) error {
		_, name := filepath.Split(filename)
		dir := *directory
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get working directory, specify the output directory explicitly: %v", err)
			}
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create output directory %v: %v", dir, err)
		}
		f := filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+extension)
		if err := os.WriteFile(f, contents, 0644); err != nil {
			return fmt.Errorf("could not write file %v: %v", f, err)
		}
		return nil
	}
	process := func(filename string) (fox3osc.AudioBuffer, error) {
		seq, err := player.ReadSMFFile(filename, *sampleRate)
		if err != nil {
			return nil, err
		}
		synth := engine.New(
			engine.WithPolyphony(*polyphony),
			engine.WithSampleRate(float64(*sampleRate)),
			seedOption(uint32(*seed)),
		)
		broker := player.NewBroker()
		p := player.NewPlayer(broker, synth, params)
		broker.ToPlayer <- player.GainMsg{Gain: float32(*gain)}
		buffer := player.RenderSequence(p, seq, player.TailFrames(&params, *sampleRate), player.DefaultBlockSize)
		if *rawOut {
			raw, err := buffer.Raw(*pcm)
			if err != nil {
				return nil, fmt.Errorf("could not generate .raw file: %v", err)
			}
			if err := output(filename, ".raw", raw); err != nil {
				return nil, fmt.Errorf("error outputting .raw file: %v", err)
			}
		}
		if *wavOut {
			wav, err := buffer.Wav(*pcm, *sampleRate)
			if err != nil {
				return nil, fmt.Errorf("could not generate .wav file: %v", err)
			}
			if err := output(filename, ".wav", wav); err != nil {
				return nil, fmt.Errorf("error outputting .wav file: %v", err)
			}
		}
		return buffer, nil
	}
	results := make([]rendered, len(files))
	var g errgroup.Group
	g.SetLimit(max(*jobs, 1))
	for i, file := range files {
		g.Go(func() error {
			buffer, err := process(file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", file, err)
				return err
			}
			results[i] = rendered{filename: file, buffer: buffer}
			return nil
		})
	}
	retval := 0
	if g.Wait() != nil {
		retval = 1
	}
	if *play {
		audioContext, err := oto.NewContext(*sampleRate, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not acquire oto AudioContext: %v\n", err)
			os.Exit(1)
		}
		for _, r := range results {
			if r.buffer == nil {
				continue
			}
			fmt.Fprintf(os.Stderr, "playing %v\n", r.filename)
			audioContext.Play(r.buffer.Source()).Wait()
		}
	}
	os.Exit(retval)
}

func seedOption(seed uint32) engine.Option {
	if seed == 0 {
		return nil
	}
	return engine.WithSeed(seed)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "fox3osc command line utility for rendering .mid files.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
