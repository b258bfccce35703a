package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"camrec/internal/capture"
	"camrec/internal/catalog"
	"camrec/internal/encoder"
	"camrec/internal/logging"
	"camrec/internal/mediaspec"
	"camrec/internal/mux"
	"camrec/internal/preflight"
	"camrec/internal/recorder"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath  string
		useCatalog  bool
		displayName string
		durationStr string
		muted       bool
		qualityStr  string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a clip with the synthetic capture pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cfg)
			if !preflight.AllPassed(checks) {
				for _, check := range checks {
					if !check.Passed {
						fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", check.Name, check.Detail)
					}
				}
				return errors.New("preflight checks failed")
			}

			duration, err := time.ParseDuration(durationStr)
			if err != nil || duration <= 0 {
				return fmt.Errorf("invalid duration %q", durationStr)
			}
			quality, err := parseQuality(qualityStr)
			if err != nil {
				return err
			}

			spec := mediaspec.DefaultRequest()
			spec.Video.Quality = quality
			if muted {
				spec.Audio.ChannelCount = mediaspec.ChannelCountNone
			}

			if useCatalog && !cfg.Catalog.Enabled {
				return errors.New("catalog output requested but catalog is disabled")
			}
			var store *catalog.Store
			if cfg.Catalog.Enabled {
				store, err = catalog.Open(cfg)
				if err != nil {
					return fmt.Errorf("open catalog: %w", err)
				}
				defer store.Close()
			}

			options := recorder.Options{
				Config:        cfg,
				Logger:        ctx.logger,
				Spec:          spec,
				Device:        capture.DefaultDevice{},
				SourceFactory: capture.NullSourceFactory(),
				AudioFactory:  encoder.SyntheticAudioFactory(),
				VideoFactory:  encoder.SyntheticVideoFactory(),
				MuxerFactory:  mux.FileSinkFactory(),
			}
			if store != nil {
				options.Catalog = store
			}
			rec, err := recorder.New(options)
			if err != nil {
				return fmt.Errorf("build recorder: %w", err)
			}
			defer rec.Release()

			monitor := capture.NewHotplugMonitor(ctx.logger, func(ev capture.HotplugEvent) {
				fmt.Fprintf(cmd.ErrOrStderr(), "sound device %s: %s\n", ev.Action, ev.Device)
			})
			if cfg.Capture.MonitorHotplug {
				if err := monitor.Start(cmd.Context()); err != nil {
					return fmt.Errorf("start hotplug monitor: %w", err)
				}
				defer monitor.Stop()
			}

			var output mux.OutputOptions
			switch {
			case useCatalog:
				output = mux.CatalogOutput{DisplayName: displayName}
			case outputPath != "":
				output = mux.FileOutput{Path: outputPath}
			default:
				name := fmt.Sprintf("recording-%s.%s",
					time.Now().Format("20060102-150405"),
					rec.Spec().OutputFormat.FileExtension())
				output = mux.FileOutput{Path: filepath.Join(cfg.Paths.OutputDir, name)}
			}

			width, height := rec.Spec().Video.Quality.Resolution(rec.Spec().Video.AspectRatio)
			if err := rec.Initialize(recorder.SurfaceRequest{Width: width, Height: height}); err != nil {
				return fmt.Errorf("initialize recorder: %w", err)
			}

			finalized := make(chan recorder.FinalizeEvent, 1)
			pending, err := rec.PrepareRecording(output)
			if err != nil {
				return fmt.Errorf("prepare recording: %w", err)
			}
			active, err := pending.WithListener(func(ev recorder.Event) {
				if final, ok := ev.(recorder.FinalizeEvent); ok {
					finalized <- final
				}
			}).Start()
			if err != nil {
				return fmt.Errorf("start recording: %w", err)
			}

			ctx.logger.Info("recording",
				logging.String(logging.FieldRecordingID, active.ID()),
				logging.Duration("duration", duration))
			fmt.Fprintf(cmd.OutOrStdout(), "Recording for %s (interrupt to stop early)\n", duration)

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			select {
			case <-time.After(duration):
			case <-signalCtx.Done():
				fmt.Fprintln(cmd.OutOrStdout(), "Interrupted, stopping")
			case final := <-finalized:
				return reportFinalize(cmd, final)
			}

			if err := active.Stop(); err != nil {
				return fmt.Errorf("stop recording: %w", err)
			}
			select {
			case final := <-finalized:
				return reportFinalize(cmd, final)
			case <-time.After(10 * time.Second):
				return errors.New("recording did not finalize in time")
			}
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (defaults to the configured output directory)")
	cmd.Flags().BoolVar(&useCatalog, "catalog", false, "Write through the content catalog instead of a plain file")
	cmd.Flags().StringVar(&displayName, "name", "", "Display name for the catalog entry")
	cmd.Flags().StringVarP(&durationStr, "duration", "d", "5s", "How long to record")
	cmd.Flags().BoolVar(&muted, "muted", false, "Record without an audio track")
	cmd.Flags().StringVarP(&qualityStr, "quality", "q", "auto", "Video quality tier (sd, hd, fhd, uhd, auto)")
	return cmd
}

func reportFinalize(cmd *cobra.Command, final recorder.FinalizeEvent) error {
	out := cmd.OutOrStdout()
	location := final.Output.Path
	if final.Output.URI != "" {
		location = fmt.Sprintf("%s (%s)", final.Output.URI, final.Output.Path)
	}
	if final.Code != recorder.ErrCodeNone {
		return fmt.Errorf("recording failed (%s): %v", final.Code, final.Cause)
	}
	fmt.Fprintf(out, "Recorded %s over %s to %s\n",
		formatBytes(final.Stats.Bytes),
		final.Stats.Duration.Round(time.Millisecond),
		location)
	return nil
}

func parseQuality(value string) (mediaspec.Quality, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return mediaspec.QualityAuto, nil
	case "sd":
		return mediaspec.QualitySD, nil
	case "hd":
		return mediaspec.QualityHD, nil
	case "fhd":
		return mediaspec.QualityFHD, nil
	case "uhd":
		return mediaspec.QualityUHD, nil
	default:
		return mediaspec.QualityAuto, fmt.Errorf("unknown quality %q", value)
	}
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
