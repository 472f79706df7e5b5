package player

import (
	"math"
	"testing"
	"time"

	"github.com/bruv1700/fox3osc"
)

func TestDetectorChunks(t *testing.T) {
	d := NewDetector(NewBroker(), 1000)
	var results []DetectorResult
	report := func(r DetectorResult) { results = append(results, r) }
	buf := make(fox3osc.AudioBuffer, 70)
	for i := range buf {
		buf[i] = 0.5
	}
	for i := 0; i < 10; i++ {
		d.process(buf, report)
	}
	if len(results) != 7 {
		t.Fatalf("got %d results from 700 samples in chunks of 100, want 7", len(results))
	}
	want := Decibel(20 * math.Log10(0.5))
	last := results[len(results)-1]
	if math.Abs(float64(last.Momentary-want)) > 1e-3 || math.Abs(float64(last.Peak-want)) > 1e-3 {
		t.Fatalf("got %+v, want momentary and peak %v dB", last, want)
	}
	if first := results[0]; math.Abs(float64(first.Momentary-want+Decibel(10*math.Log10(4)))) > 1e-3 {
		t.Fatalf("first momentary %v should average one chunk into four", first.Momentary)
	}
	d.reset()
	if r := d.update(make([]float32, 100)); r.Momentary != MinDecibel || r.MaxPeak != MinDecibel {
		t.Fatalf("silence after reset reported %+v", r)
	}
}

func TestDetectorRun(t *testing.T) {
	b := NewBroker()
	d := NewDetector(b, 100)
	go d.Run()
	buf := b.GetAudioBuffer()
	*buf = append(*buf, make([]float32, 25)...)
	(*buf)[3] = -1
	b.ToDetector <- MsgToDetector{Reset: true, Data: buf}
	msg, ok := TimeoutReceive(b.ToHost, time.Second)
	if !ok || !msg.HasDetectorResult {
		t.Fatalf("no detector result received")
	}
	if msg.DetectorResult.MaxPeak != 0 {
		t.Fatalf("got max peak %v dB, want 0 dB", msg.DetectorResult.MaxPeak)
	}
	b.CloseDetector <- struct{}{}
	select {
	case <-b.FinishedDetector:
	case <-time.After(time.Second):
		t.Fatalf("detector did not finish")
	}
}
