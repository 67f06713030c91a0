// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/cache"
	"github.com/ik5/audpipe/formats/wav"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func exportCommand(a *app) *cobra.Command {
	var start, end time.Duration

	cmd := &cobra.Command{
		Use:   "export <input> <output.wav>",
		Short: "Write a range of an audio file as mono 16-bit WAV",
		Long: `Export decodes the input, normalizes it to mono signed 16-bit at 32 kHz
or more and writes [start, end) to a WAV file. An end of zero means the end
of the stream.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out := args[0], args[1]

			p, err := audpipe.Open(in, a.options()...)
			if err != nil {
				return err
			}
			defer p.Close()

			// Reads ahead of a cache's decoder are silent.
			if err := cache.Wait(cmd.Context(), p, 20*time.Millisecond); err != nil {
				return err
			}

			startMs, endMs := start.Milliseconds(), end.Milliseconds()
			if end <= 0 {
				endMs = duration(p.NumSamples(), p.SampleRate()).Milliseconds() + 1
			}

			if err := wav.SaveAudioClip(p, out, startMs, endMs); err != nil {
				return err
			}

			first, last := wav.ClipRange(p, startMs, endMs)
			a.logger.Info("clip exported",
				zap.String("input", in),
				zap.String("output", out),
				zap.Int64("start", first),
				zap.Int64("samples", last-first))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d samples at %d Hz to %s\n", last-first, p.SampleRate(), out)

			return nil
		},
	}

	cmd.Flags().DurationVar(&start, "start", 0, "Start of the clip, e.g. 1.5s")
	cmd.Flags().DurationVar(&end, "end", 0, "End of the clip, e.g. 1m30s")

	return cmd
}
