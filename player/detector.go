package player

import (
	"math"

	"github.com/bruv1700/fox3osc"
	"github.com/viterin/vek/vek32"
)

type (
	// Detector measures the unweighted loudness and the peak level of the
	// player output in chunks of 100 ms. It runs in its own goroutine, reads
	// the buffers from Broker.ToDetector and reports to Broker.ToHost.
	Detector struct {
		broker    *Broker
		chunkSize int
		history   fox3osc.AudioBuffer
		powers    [2]RingBuffer[float32] // 0 = momentary, 1 = short-term
		peaks     RingBuffer[float32]
		maxPeak   float32
		tmp       []float32
	}

	Decibel float32

	DetectorResult struct {
		Momentary Decibel // mean power of the last 400 ms
		ShortTerm Decibel // mean power of the last 3 s
		Peak      Decibel // peak of the last 400 ms
		MaxPeak   Decibel // peak since the last reset
	}

	RingBuffer[T any] struct {
		Buffer []T
		Cursor int
	}
)

// MinDecibel is reported for silence.
const MinDecibel Decibel = -120

func NewDetector(b *Broker, sampleRate int) *Detector {
	d := &Detector{
		broker:    b,
		chunkSize: max(sampleRate/10, 1),
	}
	d.powers[0].Buffer = make([]float32, 4)
	d.powers[1].Buffer = make([]float32, 30)
	d.peaks.Buffer = make([]float32, 4)
	return d
}

// Run processes messages until CloseDetector is signaled.
func (d *Detector) Run() {
	defer close(d.broker.FinishedDetector)
	for {
		select {
		case <-d.broker.CloseDetector:
			return
		case msg := <-d.broker.ToDetector:
			if msg.Reset {
				d.reset()
			}
			if buf, ok := msg.Data.(*fox3osc.AudioBuffer); ok {
				d.process(*buf, func(r DetectorResult) {
					TrySend(d.broker.ToHost, MsgToHost{HasDetectorResult: true, DetectorResult: r})
				})
				d.broker.PutAudioBuffer(buf)
			}
		}
	}
}

// process splits buf into chunks, carrying the remainder over to the next
// call, and reports a result for every complete chunk.
func (d *Detector) process(buf fox3osc.AudioBuffer, report func(DetectorResult)) {
	for len(buf) > 0 {
		if len(d.history) > 0 || len(buf) < d.chunkSize {
			l := min(len(buf), d.chunkSize-len(d.history))
			d.history = append(d.history, buf[:l]...)
			buf = buf[l:]
			if len(d.history) < d.chunkSize {
				return
			}
			report(d.update(d.history))
			d.history = d.history[:0]
			continue
		}
		report(d.update(buf[:d.chunkSize]))
		buf = buf[d.chunkSize:]
	}
}

func (d *Detector) update(chunk []float32) DetectorResult {
	if cap(d.tmp) < len(chunk) {
		d.tmp = make([]float32, len(chunk))
	}
	sq := vek32.Mul_Into(d.tmp[:len(chunk)], chunk, chunk)
	power := vek32.Mean(sq)
	for i := range d.powers {
		d.powers[i].WriteWrapSingle(power)
	}
	abs := vek32.Abs_Into(d.tmp[:len(chunk)], chunk)
	peak := vek32.Max(abs)
	d.peaks.WriteWrapSingle(peak)
	d.maxPeak = max(d.maxPeak, peak)
	return DetectorResult{
		Momentary: powerToDecibel(vek32.Mean(d.powers[0].Buffer)),
		ShortTerm: powerToDecibel(vek32.Mean(d.powers[1].Buffer)),
		Peak:      amplitudeToDecibel(vek32.Max(d.peaks.Buffer)),
		MaxPeak:   amplitudeToDecibel(d.maxPeak),
	}
}

func (d *Detector) reset() {
	d.history = d.history[:0]
	for i := range d.powers {
		clear(d.powers[i].Buffer)
		d.powers[i].Cursor = 0
	}
	clear(d.peaks.Buffer)
	d.peaks.Cursor = 0
	d.maxPeak = 0
}

func powerToDecibel(power float32) Decibel {
	if !(power > 0) {
		return MinDecibel
	}
	return max(Decibel(10*math.Log10(float64(power))), MinDecibel)
}

func amplitudeToDecibel(amplitude float32) Decibel {
	return powerToDecibel(amplitude * amplitude)
}

func (r *RingBuffer[T]) WriteWrapSingle(value T) {
	r.Cursor = (r.Cursor + 1) % len(r.Buffer)
	r.Buffer[r.Cursor] = value
}
