package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/sanpid/internal/config"
	"github.com/brogergvhs/sanpid/internal/providers"
	"github.com/brogergvhs/sanpid/internal/util"
)

var (
	flagArticlesJSON bool
	flagDate         string
	flagRange        string
	flagList         string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List the newest articles on the landing page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(config.Options{})
		if err != nil {
			return err
		}

		ctx, cancel := util.InterruptContext(cmd.Context(), "")
		defer cancel()

		list, err := rt.scraper.FetchArticles(ctx)
		if err != nil {
			return err
		}

		list = providers.Filter(list, flagDate, flagRange, flagList)
		if len(list) == 0 {
			return fmt.Errorf("no articles match the selection")
		}

		out := cmd.OutOrStdout()
		if flagArticlesJSON {
			return writeJSON(out, list)
		}

		return printArticles(out, list)
	},
}

func init() {
	articlesCmd.Flags().BoolVar(&flagArticlesJSON, "json", false, "print articles as JSON")
	articlesCmd.Flags().StringVar(&flagDate, "date", "", "only articles from a date (20240615, 202406 or 2024年06月15日)")
	articlesCmd.Flags().StringVar(&flagRange, "range", "", "select a range of positions (e.g. 1-5)")
	articlesCmd.Flags().StringVar(&flagList, "list", "", "select specific positions (e.g. 1,3,4)")
	articlesCmd.MarkFlagsMutuallyExclusive("date", "range", "list")

	rootCmd.AddCommand(articlesCmd)
}
