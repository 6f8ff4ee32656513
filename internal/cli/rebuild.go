package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/cache"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/rebuild"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// newRebuildCmd creates the rebuild command.
func newRebuildCmd() *cobra.Command {
	var (
		label          string
		fallbackFamily string
		fallbackStyle  string
		noCache        bool
		interactive    bool
		reportOut      string
		exportOut      string
	)

	cmd := &cobra.Command{
		Use:   "rebuild <snapshot.json>",
		Short: "Rebuild a snapshot into a live document and report warnings",
		Long: `Rebuild reconstructs the snapshot's node tree against an in-memory host
document, exactly as the editor plugin would, and reports every attribute
that had to be degraded: unavailable fonts, image fills without pixel data,
unsupported node kinds, and degenerate groups or component sets.

Reports are content-addressed: rebuilding an unchanged snapshot with the
same options is answered from the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			if fallbackFamily == "" {
				fallbackFamily = cfg.FallbackFamily
			}
			if fallbackStyle == "" {
				fallbackStyle = cfg.FallbackStyle
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			snap, err := snapshot.Parse(bytes.NewReader(data))
			if err != nil {
				return err
			}
			nodeCount := snap.Document.Count()
			logger.Debug("snapshot parsed", "file", args[0], "nodes", nodeCount)

			c, err := openReportCache(cfg, noCache)
			if err != nil {
				return err
			}
			defer c.Close()

			key := cache.NewDefaultKeyer().ReportKey(cache.Hash(data), cache.ReportKeyOpts{
				RootLabel:      label,
				FallbackFamily: fallbackFamily,
				FallbackStyle:  fallbackStyle,
				YieldEvery:     cfg.YieldEvery,
			})

			var res rebuild.Result
			cached := false
			if payload, ok, _ := c.Get(ctx, key); ok {
				if err := json.Unmarshal(payload, &res); err == nil {
					cached = true
					logger.Debug("report served from cache", "key", key)
				}
			}

			var mem *host.Memory
			if !cached {
				mem = host.NewMemory(host.MemoryConfig{})
				track := newProgress(logger)
				spinner := newSpinnerWithContext(ctx, "Rebuilding snapshot")
				spinner.Start()

				result, err := rebuild.Rebuild(ctx, mem.Env(), snap, rebuild.Options{
					RootLabel:  label,
					Logger:     logger,
					YieldEvery: cfg.YieldEvery,
					FallbackFont: host.FontName{
						Family: fallbackFamily,
						Style:  fallbackStyle,
					},
					OnProgress: func(msg string, pct float64) {
						spinner.SetMessage(fmt.Sprintf("%s (%.0f%%)", msg, pct))
					},
				})
				if err != nil {
					spinner.StopWithError("Rebuild failed")
					return err
				}
				spinner.Stop()
				track.done(fmt.Sprintf("Rebuilt %d nodes", nodeCount))
				res = *result

				if payload, err := json.Marshal(res); err == nil {
					if err := c.Set(ctx, key, payload, cache.TTLReport); err != nil {
						logger.Warn("report cache write failed", "err", err)
					}
				}
			}

			printSuccess("Rebuilt %s", snapshotLabel(snap, args[0]))
			printStats(nodeCount, len(res.Warnings), cached)

			if len(res.Warnings) > 0 {
				if interactive {
					if err := runWarningBrowser(res.Warnings); err != nil {
						return err
					}
				} else {
					for _, w := range res.Warnings {
						printWarning("%s", w)
					}
				}
			}

			if reportOut != "" {
				payload, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				if err := os.WriteFile(reportOut, payload, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				printFile(reportOut)
			}

			if exportOut != "" {
				if cached {
					printDetail("Export skipped: report was served from cache, no live tree to export")
				} else if err := exportTree(mem, exportOut); err != nil {
					return err
				}
			}

			if len(res.Warnings) > 0 && !interactive {
				printNextStep("Browse warnings interactively", "snaprestore rebuild --interactive "+args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "rename the rebuilt root node")
	cmd.Flags().StringVar(&fallbackFamily, "fallback-family", "", "fallback font family for unresolvable fonts")
	cmd.Flags().StringVar(&fallbackStyle, "fallback-style", "", "fallback font style for unresolvable fonts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the report cache")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse warnings in an interactive list")
	cmd.Flags().StringVar(&reportOut, "report", "", "write the JSON report to a file")
	cmd.Flags().StringVar(&exportOut, "export", "", "re-export the rebuilt tree as a snapshot file")

	return cmd
}

// openReportCache opens the configured report cache, or a null cache when
// caching is disabled.
func openReportCache(cfg Config, disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir(cfg)
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// exportTree round-trips the rebuilt root back into snapshot form. This is
// the closest offline approximation of what a real host would now contain.
func exportTree(mem *host.Memory, path string) error {
	children := mem.Root().Children()
	if len(children) == 0 {
		return fmt.Errorf("nothing to export: document is empty")
	}

	doc, err := mem.Export(children[0])
	if err != nil {
		return fmt.Errorf("export tree: %w", err)
	}
	payload, err := snapshot.Marshal(&snapshot.Snapshot{SchemaVersion: 1, Document: doc})
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	printFile(path)
	return nil
}

func snapshotLabel(snap *snapshot.Snapshot, path string) string {
	if snap.Name != "" {
		return fmt.Sprintf("%q", snap.Name)
	}
	return path
}
