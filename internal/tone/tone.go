package tone

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/desertthunder/incense/internal/shared"
)

const (
	DefaultFrequency  = 528.0
	DefaultDuration   = 2 * time.Second
	DefaultSampleRate = 44100
	DefaultStartGain  = 0.3
	DefaultEndGain    = 0.01

	bitsPerSample = 16
	channels      = 1
	headerSize    = 44
)

// Params describes the synthesized tone.
type Params struct {
	Frequency  float64       // Hz
	Duration   time.Duration // total length
	SampleRate int           // samples per second
	StartGain  float64       // gain at t=0
	EndGain    float64       // gain at t=Duration, must be > 0 for the exponential ramp
}

// DefaultParams is a 528 Hz sine fading from 0.3 to 0.01 over two seconds.
func DefaultParams() Params {
	return Params{
		Frequency:  DefaultFrequency,
		Duration:   DefaultDuration,
		SampleRate: DefaultSampleRate,
		StartGain:  DefaultStartGain,
		EndGain:    DefaultEndGain,
	}
}

// ParamsFromConfig applies the configured frequency and length over the defaults.
func ParamsFromConfig(cfg shared.ToneConfig) Params {
	p := DefaultParams()
	if cfg.Frequency > 0 {
		p.Frequency = cfg.Frequency
	}
	if d := cfg.Duration(); d > 0 {
		p.Duration = d
	}
	return p
}

// Gain returns the envelope value at t.
func (p Params) Gain(t time.Duration) float64 {
	if p.Duration <= 0 || p.StartGain <= 0 || p.EndGain <= 0 {
		return 0
	}
	frac := min(max(t.Seconds()/p.Duration.Seconds(), 0), 1)
	return p.StartGain * math.Pow(p.EndGain/p.StartGain, frac)
}

// Samples returns the number of frames for the tone.
func (p Params) Samples() int {
	return int(math.Round(p.Duration.Seconds() * float64(p.SampleRate)))
}

// Synthesize renders p as a RIFF/WAVE file.
func Synthesize(p Params) []byte {
	if p.SampleRate <= 0 {
		p.SampleRate = DefaultSampleRate
	}

	n := p.Samples()
	dataSize := n * channels * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+dataSize))
	writeHeader(buf, p.SampleRate, dataSize)

	rate := float64(p.SampleRate)
	for i := range n {
		t := float64(i) / rate
		v := math.Sin(2*math.Pi*p.Frequency*t) * p.Gain(time.Duration(t*float64(time.Second)))
		_ = binary.Write(buf, binary.LittleEndian, int16(math.Round(v*math.MaxInt16)))
	}

	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, sampleRate, dataSize int) {
	blockAlign := channels * bitsPerSample / 8
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	_ = binary.Write(buf, le, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, le, uint32(16))
	_ = binary.Write(buf, le, uint16(1)) // PCM
	_ = binary.Write(buf, le, uint16(channels))
	_ = binary.Write(buf, le, uint32(sampleRate))
	_ = binary.Write(buf, le, uint32(sampleRate*blockAlign))
	_ = binary.Write(buf, le, uint16(blockAlign))
	_ = binary.Write(buf, le, uint16(bitsPerSample))

	buf.WriteString("data")
	_ = binary.Write(buf, le, uint32(dataSize))
}
