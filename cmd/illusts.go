package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
	"github.com/brogergvhs/sanpid/internal/downloader"
	"github.com/brogergvhs/sanpid/internal/ui"
	"github.com/brogergvhs/sanpid/internal/util"
)

var (
	flagIllustsJSON     bool
	flagSaveDir         string
	flagArchive         string
	flagSkipBroken      bool
	flagProbeWorkers    int
	flagDownloadWorkers int
	flagNoProgress      bool
)

var illustsCmd = &cobra.Command{
	Use:   "illusts",
	Short: "Find illustrations of the newest articles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(config.Options{
			Output:          flagSaveDir,
			ProbeWorkers:    flagProbeWorkers,
			DownloadWorkers: flagDownloadWorkers,
			SkipBroken:      flagSkipBroken,
		})
		if err != nil {
			return err
		}

		saving := flagSaveDir != "" || flagArchive != ""
		folder := ""
		if saving {
			folder = rt.cfg.Output
		}

		ctx, cancel := util.InterruptContext(cmd.Context(), folder)
		defer cancel()

		var barOut io.Writer = os.Stderr
		if flagNoProgress || flagIllustsJSON || rt.cfg.Debug {
			barOut = io.Discard
		}
		pm := ui.NewProgressManager(barOut)

		var stats ui.Stats
		probeBar := pm.Register("Probing", "probes")
		probeBar.SetTotal(rt.cfg.MaxScanArticles * rt.cfg.IllustsPerArticle)
		rt.scraper.OnProbe(func(_ string, ok bool) {
			stats.Probes.Add(1)
			if ok {
				stats.Hits.Add(1)
			}
			probeBar.Increment(0)
		})

		list, err := rt.scraper.FetchIllustrations(ctx)
		probeBar.MarkDone()
		if err != nil {
			pm.Close()
			return err
		}
		rt.log.Debugf("Probes: %d, hits: %d\n", stats.Probes.Load(), stats.Hits.Load())

		if !saving {
			pm.Close()
			if flagIllustsJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				rt.log.Infof("No illustrations found\n")
				return nil
			}
			return printIllustrations(cmd.OutOrStdout(), list)
		}

		if len(list) == 0 {
			pm.Close()
			rt.log.Infof("No illustrations found\n")
			return nil
		}

		dl := downloader.New(rt.client, rt.log, rt.cfg.SkipBroken)
		fileBar := pm.Register("Saving ", "files")
		files, written, err := dl.Save(ctx, list, folder, rt.cfg.DownloadWorkers, fileBar)
		pm.Close()
		stats.Files.Store(int64(len(files)))
		stats.Bytes.Store(written)
		if err != nil {
			return err
		}

		if flagArchive != "" {
			archive := flagArchive
			if !filepath.IsAbs(archive) && filepath.Dir(archive) == "." {
				archive = filepath.Join(folder, archive)
			}
			if err := util.CreateArchive(files, archive); err != nil {
				return err
			}
			rt.log.Infof("Archive written: %s\n", archive)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d illustrations (%s) to %s\n",
			stats.Files.Load(), util.Human(stats.Bytes.Load()), folder)

		return nil
	},
}

func init() {
	illustsCmd.Flags().BoolVar(&flagIllustsJSON, "json", false, "print illustrations as JSON")
	illustsCmd.Flags().StringVar(&flagSaveDir, "save", "", "download illustrations into this folder")
	illustsCmd.Flags().StringVar(&flagArchive, "archive", "", "also zip the downloaded files into this archive")
	illustsCmd.Flags().BoolVar(&flagSkipBroken, "skip-broken", false, "keep going when a download fails")
	illustsCmd.Flags().IntVar(&flagProbeWorkers, "probe-workers", 0, "concurrent probes per article")
	illustsCmd.Flags().IntVar(&flagDownloadWorkers, "download-workers", 0, "parallel downloads")
	illustsCmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "hide progress bars")

	rootCmd.AddCommand(illustsCmd)
}
