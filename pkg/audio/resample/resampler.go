// ABOUTME: Linear resampler for converting sample rates
// ABOUTME: Brings bank-rate samples to the fixed playback device rate
package resample

// Resampler performs linear interpolation to convert between sample rates.
// The last input frame of each chunk is kept so interpolation runs across
// chunk boundaries without a seam.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
	lastFrame  []int32 // one sample per channel
	primed     bool
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		lastFrame:  make([]int32, channels),
	}
}

// frame returns sample ch of frame i of the carried frame followed by input.
func (r *Resampler) frame(input []int32, i, ch int) int32 {
	if r.primed {
		if i == 0 {
			return r.lastFrame[ch]
		}
		i--
	}
	return input[i*r.channels+ch]
}

// Resample converts interleaved input at inputRate to interleaved output at
// outputRate and returns the number of samples written. output should hold
// at least OutputSamplesNeeded(len(input)) + channels samples; input beyond
// what fits is dropped.
func (r *Resampler) Resample(input []int32, output []int32) int {
	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return 0
	}
	outputFrames := len(output) / r.channels

	total := inputFrames
	if r.primed {
		total++
	}

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx+1 >= total {
			break
		}

		frac := r.position - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			s1 := float64(r.frame(input, inputIdx, ch))
			s2 := float64(r.frame(input, inputIdx+1, ch))
			output[outIdx*r.channels+ch] = int32(s1*(1.0-frac) + s2*frac)
		}

		outIdx++
		r.position += r.ratio
	}

	// The last input frame becomes frame 0 of the next chunk.
	r.position -= float64(total - 1)
	if r.position < 0 {
		r.position = 0
	}
	copy(r.lastFrame, input[(inputFrames-1)*r.channels:])
	r.primed = true

	return outIdx * r.channels
}

// Reset resets the resampler state
func (r *Resampler) Reset() {
	r.position = 0.0
	r.primed = false
	for i := range r.lastFrame {
		r.lastFrame[i] = 0
	}
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Convert resamples a complete clip in one call. Equal rates return a copy.
func Convert(input []int32, inputRate, outputRate, channels int) []int32 {
	if inputRate == outputRate {
		return append([]int32(nil), input...)
	}
	r := New(inputRate, outputRate, channels)
	output := make([]int32, r.OutputSamplesNeeded(len(input))+channels)
	n := r.Resample(input, output)
	return output[:n]
}
