// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/ik5/audpipe"
	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/cache"
	"github.com/spf13/cobra"
)

func infoCommand(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Show the source and normalized format of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			raw, err := audpipe.DefaultRegistry().Probe(path, audio.WithLogger(a.logger))
			if err != nil {
				return err
			}
			name, src := raw.Name(), raw.Format()
			_ = raw.Close()

			p, err := audpipe.Open(path, a.options()...)
			if err != nil {
				return err
			}
			defer p.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Format:   %s\n", name)
			fmt.Fprintf(out, "Source:   %s\n", describe(src))
			fmt.Fprintf(out, "Output:   %s\n", describe(p.Format()))
			fmt.Fprintf(out, "Duration: %s\n", duration(p.NumSamples(), p.SampleRate()))
			fmt.Fprintf(out, "Reader:   %s\n", p.Name())

			if wait {
				started := time.Now()
				if err := cache.Wait(cmd.Context(), p, 20*time.Millisecond); err != nil {
					return err
				}
				fmt.Fprintf(out, "Decoded:  %s\n", time.Since(started).Round(time.Millisecond))
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "Wait for the cache to finish decoding")

	return cmd
}

func describe(f audio.Format) string {
	kind := "int"
	if f.Float {
		kind = "float"
	}
	return fmt.Sprintf("%d ch, %d Hz, %d-bit %s", f.Channels, f.SampleRate, f.BytesPerSample*8, kind)
}

func duration(samples int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return (time.Duration(samples) * time.Second / time.Duration(rate)).Round(time.Millisecond)
}
