package interpret

// streamClock derives a transcript's position within the audio stream
// from the cumulative bytes received, assuming 16-bit mono PCM at the
// configured sample rate. Each chunk's timestamp is the offset at
// which the chunk began, so timestamps are monotonically
// non-decreasing within a session.
type streamClock struct {
	bytesPerSecond float64
	totalBytes     int64
}

func newStreamClock(sampleRateHz int) *streamClock {
	if sampleRateHz <= 0 {
		sampleRateHz = 16000
	}
	return &streamClock{bytesPerSecond: float64(sampleRateHz) * 2}
}

// advance records n received bytes and returns the stream offset, in
// seconds, at which those bytes began.
func (c *streamClock) advance(n int) float64 {
	offset := float64(c.totalBytes) / c.bytesPerSecond
	c.totalBytes += int64(n)
	return offset
}
