package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/tracker"
)

func (a *app) statsCommand() *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				sum model.StatisticsSummary
				err error
			)
			if server {
				sum, err = a.api.Stats(cmd.Context())
			} else {
				sum, err = tracker.NewStats(a.api, a.log).Load(cmd.Context())
			}
			if err != nil {
				return a.fail("Failed to load statistics", err)
			}
			a.printSummary(sum)
			return nil
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "use the summary computed by the gateway")
	return cmd
}

func (a *app) printSummary(s model.StatisticsSummary) {
	table(a.out, []string{"metric", "value"}, [][]string{
		{"Total games", strconv.Itoa(s.TotalGames)},
		{"Completed", strconv.Itoa(s.CompletedGames)},
		{"Pending", strconv.Itoa(s.PendingGames)},
		{"Reviews", strconv.Itoa(s.TotalReviews)},
		{"Hours played", formatFloat(s.TotalHoursPlayed)},
		{"Average score", fmt.Sprintf("%.1f", s.AverageScore)},
		{"Favorite genre", s.FavoriteGenre},
		{"Favorite platform", s.FavoritePlatform},
	})
	if len(s.TopRankedGames) == 0 {
		return
	}
	fmt.Fprintln(a.out)
	rows := make([][]string, 0, len(s.TopRankedGames))
	for i, g := range s.TopRankedGames {
		rows = append(rows, []string{strconv.Itoa(i + 1), g.Title, formatFloat(g.MeanScore)})
	}
	table(a.out, []string{"rank", "title", "mean score"}, rows)
}

func (a *app) enumsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enums",
		Short: "List allowed genres, platforms and difficulties",
		Args:  cobra.NoArgs,
		// no gateway needed
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			for _, g := range model.Genres() {
				fmt.Fprintf(a.out, "genre\t%s\n", g)
			}
			for _, p := range model.Platforms() {
				fmt.Fprintf(a.out, "platform\t%s\n", p)
			}
			for _, d := range model.Difficulties() {
				fmt.Fprintf(a.out, "difficulty\t%s\n", d)
			}
		},
	}
}
