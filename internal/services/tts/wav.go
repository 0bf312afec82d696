package tts

import (
	"encoding/binary"
	"fmt"
	"os"
)

// Gemini TTS output format.
const (
	sampleRate    = 24000
	numChannels   = 1
	bitsPerSample = 16
)

// WriteWAV writes raw 16-bit mono 24kHz PCM to path as a RIFF/WAVE file.
func WriteWAV(path string, pcm []byte) error {
	if len(pcm) == 0 {
		return fmt.Errorf("empty pcm data")
	}

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+len(pcm)))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], numChannels*bitsPerSample/8)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(len(pcm)))

	return os.WriteFile(path, append(header, pcm...), 0o644)
}
