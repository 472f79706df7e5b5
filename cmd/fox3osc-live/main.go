package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/bruv1700/fox3osc"
	"github.com/bruv1700/fox3osc/cmd"
	"github.com/bruv1700/fox3osc/engine"
	"github.com/bruv1700/fox3osc/oto"
	"github.com/bruv1700/fox3osc/player"
	"github.com/bruv1700/fox3osc/version"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var defaultMidiInput = flag.String("midi-input", "", "connect MIDI input to matching device name prefix; empty opens the first input")
var patch = flag.String("patch", "init", "preset name or .yml patch file")
var sampleRate = flag.Int("rate", engine.DefaultRate, "sample rate in Hz")
var polyphony = flag.Int("polyphony", engine.DefaultPolyphony, "number of voices")
var channel = flag.Int("channel", 0, "MIDI channel 1-16 to listen to; 0 listens to all channels")
var gain = flag.Float64("gain", 1, "output gain")
var latency = flag.Duration("latency", oto.DefaultBufferSize, "audio buffer size")
var list = flag.Bool("list", false, "list MIDI inputs and exit")
var meter = flag.Bool("meter", false, "print output levels every second")
var versionFlag = flag.Bool("v", false, "print version")

func main() {
	flag.Parse()
	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	midiContext := cmd.NewMidiContext(*sampleRate)
	defer midiContext.Close()
	if *list {
		fmt.Printf("MIDI support: %v\n", midiContext.Support())
		for input := range midiContext.Inputs {
			fmt.Println(input)
		}
		return
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	params, err := cmd.LoadPatch(*patch)
	if err != nil {
		log.Fatalf("could not load patch: %v", err)
	}
	if err := openInput(midiContext, *defaultMidiInput); err != nil {
		log.Printf("no MIDI input: %v", err)
	}
	audioContext, err := oto.NewContext(*sampleRate, *latency)
	if err != nil {
		log.Fatal(err)
	}

	broker := player.NewBroker()
	synth := engine.New(engine.WithPolyphony(*polyphony), engine.WithSampleRate(float64(*sampleRate)))
	p := player.NewPlayer(broker, synth, params)
	broker.ToPlayer <- player.GainMsg{Gain: float32(*gain)}
	broker.ToPlayer <- player.ChannelMsg{Channel: *channel - 1}
	detector := player.NewDetector(broker, *sampleRate)
	go detector.Run()

	audioCloser := audioContext.Play(func(buf fox3osc.AudioBuffer) error {
		p.Process(buf, midiContext)
		return nil
	})
	log.Printf("playing %v at %d Hz, press Ctrl+C to stop", cmd.PatchName(*patch), *sampleRate)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	var last player.DetectorResult
loop:
	for {
		select {
		case <-interrupt:
			break loop
		case msg := <-broker.ToHost:
			if msg.HasDetectorResult {
				last = msg.DetectorResult
			}
			if alert, ok := msg.Data.(player.Alert); ok {
				log.Printf("%v: %v", alert.Name, alert.Message)
			}
		case <-ticker.C:
			if *meter {
				log.Printf("momentary %.1f dB, short-term %.1f dB, peak %.1f dB", last.Momentary, last.ShortTerm, last.Peak)
			}
		}
	}
	audioCloser.Close()
	player.TrySend(broker.CloseDetector, struct{}{})
	select {
	case <-broker.FinishedDetector:
	case <-time.After(3 * time.Second):
		log.Print("detector did not finish")
	}
}

func openInput(c cmd.MIDIContext, prefix string) error {
	if c.Support() != player.MIDISupported {
		return fmt.Errorf("MIDI %v", c.Support())
	}
	for input := range c.Inputs {
		if strings.HasPrefix(input.String(), prefix) {
			if err := input.Open(); err != nil {
				return fmt.Errorf("failed to open MIDI input '%s': %w", input, err)
			}
			log.Printf("opened MIDI input %v", input)
			return nil
		}
	}
	return fmt.Errorf("no MIDI input device found with prefix '%s'", prefix)
}
