package media

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"overdub/internal/services"
	"overdub/internal/utterance"
)

// Processor wraps the ffmpeg operations a dubbing run needs: demuxing,
// chunk extraction, dubbed track assembly, and the final remux.
type Processor struct {
	ffmpegBinary  string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewProcessor creates a processor using the given ffmpeg binary name.
func NewProcessor(ffmpegBinary string) *Processor {
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	return &Processor{ffmpegBinary: ffmpegBinary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (p *Processor) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	p.commandRunner = runner
}

func (p *Processor) run(ctx context.Context, stage, operation string, args []string) error {
	if p.commandRunner != nil {
		if err := p.commandRunner(ctx, p.ffmpegBinary, args...); err != nil {
			return services.Wrap(services.ErrExternalTool, stage, operation, "ffmpeg failed", err)
		}
		return nil
	}
	cmd := exec.CommandContext(ctx, p.ffmpegBinary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := fmt.Sprintf("ffmpeg failed: %s", strings.TrimSpace(string(output)))
		return services.Wrap(services.ErrExternalTool, stage, operation, detail, err)
	}
	return nil
}

// ExtractAudio demuxes the audio stream into a stereo 44.1kHz WAV file.
func (p *Processor) ExtractAudio(ctx context.Context, source, dest string) error {
	return p.run(ctx, "preprocess", "extract audio", buildExtractAudioArgs(source, dest))
}

// ExtractVideo writes the video stream without any audio.
func (p *Processor) ExtractVideo(ctx context.Context, source, dest string) error {
	return p.run(ctx, "preprocess", "extract video", buildExtractVideoArgs(source, dest))
}

// CutChunk extracts the [start, end) window of an audio file as WAV.
func (p *Processor) CutChunk(ctx context.Context, source string, start, end float64, dest string) error {
	if end <= start {
		return services.Wrap(services.ErrConfiguration, "preprocess", "cut chunk",
			fmt.Sprintf("invalid window %.3f-%.3f", start, end), nil)
	}
	return p.run(ctx, "preprocess", "cut chunk", buildCutChunkArgs(source, start, end, dest))
}

// AssembleDubbedTrack lays each record's dubbed chunk over the background at
// its original start time. Records without a dubbed chunk are skipped.
func (p *Processor) AssembleDubbedTrack(ctx context.Context, background string, records []utterance.Record, dest string) error {
	args, err := buildAssembleArgs(background, records, dest)
	if err != nil {
		return err
	}
	return p.run(ctx, "postprocess", "assemble dubbed track", args)
}

// MergeAudioVideo remuxes the dubbed audio with the original video stream.
func (p *Processor) MergeAudioVideo(ctx context.Context, video, audio, dest string) error {
	return p.run(ctx, "postprocess", "merge audio and video", buildMergeArgs(video, audio, dest))
}

func baseArgs() []string {
	return []string{"-y", "-hide_banner", "-loglevel", "error"}
}

func buildExtractAudioArgs(source, dest string) []string {
	return append(baseArgs(),
		"-i", source,
		"-vn", "-sn", "-dn",
		"-ac", "2",
		"-ar", "44100",
		"-c:a", "pcm_s16le",
		dest,
	)
}

func buildExtractVideoArgs(source, dest string) []string {
	return append(baseArgs(),
		"-i", source,
		"-an",
		"-c:v", "copy",
		dest,
	)
}

func buildCutChunkArgs(source string, start, end float64, dest string) []string {
	return append(baseArgs(),
		"-ss", fmt.Sprintf("%.3f", start),
		"-to", fmt.Sprintf("%.3f", end),
		"-i", source,
		"-c:a", "pcm_s16le",
		dest,
	)
}

func buildAssembleArgs(background string, records []utterance.Record, dest string) ([]string, error) {
	type placement struct {
		path  string
		start float64
	}
	placements := make([]placement, 0, len(records))
	for _, record := range records {
		if record.DubbedPath == "" {
			continue
		}
		placements = append(placements, placement{path: record.DubbedPath, start: record.Start})
	}
	if len(placements) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "postprocess", "assemble dubbed track",
			"no dubbed chunks to place", nil)
	}
	sort.Slice(placements, func(i, j int) bool { return placements[i].start < placements[j].start })

	args := baseArgs()
	args = append(args, "-i", background)
	for _, pl := range placements {
		args = append(args, "-i", pl.path)
	}

	var filter strings.Builder
	labels := make([]string, 0, len(placements)+1)
	labels = append(labels, "[0:a]")
	for i, pl := range placements {
		delayMS := int(pl.start * 1000)
		fmt.Fprintf(&filter, "[%d:a]adelay=%d|%d[d%d];", i+1, delayMS, delayMS, i)
		labels = append(labels, fmt.Sprintf("[d%d]", i))
	}
	fmt.Fprintf(&filter, "%samix=inputs=%d:duration=first:normalize=0[out]",
		strings.Join(labels, ""), len(labels))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[out]",
		"-c:a", "pcm_s16le",
		dest,
	)
	return args, nil
}

func buildMergeArgs(video, audio, dest string) []string {
	return append(baseArgs(),
		"-i", video,
		"-i", audio,
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		dest,
	)
}
