package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/tracker"
)

func (a *app) reviewsCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "reviews", Short: "List and manage reviews"}
	cmd.AddCommand(a.reviewsList(), a.reviewsAdd(), a.reviewsUpdate(), a.reviewsDelete())
	return cmd
}

func (a *app) reviewsView() *tracker.Reviews { return tracker.NewReviews(a.api, a.log) }

func (a *app) reviewsList() *cobra.Command {
	var gameID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews, optionally for one game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := a.reviewsView().Load(cmd.Context(), gameID)
			if err != nil {
				return a.fail("Failed to load reviews", err)
			}
			a.printReviews(rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&gameID, "game", "", "only reviews of this game id")
	return cmd
}

// reviewFlags holds the review fields shared by add and update.
type reviewFlags struct {
	gameID, text, difficulty string
	score                    int
	hours                    float64
	recommend                bool
}

func (r *reviewFlags) bind(f *pflag.FlagSet) {
	f.StringVar(&r.gameID, "game", "", "reviewed game id")
	f.IntVar(&r.score, "score", 0, "score from 1 to 5")
	f.StringVar(&r.text, "text", "", "review text")
	f.Float64Var(&r.hours, "hours", 0, "hours played")
	f.StringVar(&r.difficulty, "difficulty", "", "Easy|Normal|Hard")
	f.BoolVar(&r.recommend, "recommend", true, "would recommend")
}

func (r *reviewFlags) input(f *pflag.FlagSet) model.ReviewInput {
	var in model.ReviewInput
	if f.Changed("game") {
		in.GameID = model.Ptr(r.gameID)
	}
	if f.Changed("score") {
		in.Score = model.Ptr(r.score)
	}
	if f.Changed("text") {
		in.Text = model.Ptr(r.text)
	}
	if f.Changed("hours") {
		in.HoursPlayed = model.Ptr(r.hours)
	}
	if f.Changed("difficulty") {
		in.Difficulty = model.Ptr(r.difficulty)
	}
	if f.Changed("recommend") {
		in.WouldRecommend = model.Ptr(r.recommend)
	}
	return in
}

func (a *app) reviewsAdd() *cobra.Command {
	var r reviewFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Review a game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := r.input(cmd.Flags())
			// score and text go out even when empty so the server reports them as missing.
			in.Score = model.Ptr(r.score)
			in.Text = model.Ptr(r.text)
			rows, n := a.reviewsView().Create(cmd.Context(), in, r.gameID)
			if err := a.notify(n.Text, n.IsError()); err != nil {
				return err
			}
			a.printReviews(rows)
			return nil
		},
	}
	r.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("game")
	return cmd
}

func (a *app) reviewsUpdate() *cobra.Command {
	var r reviewFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a review; the reviewed game cannot change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, n := a.reviewsView().Update(cmd.Context(), args[0], r.input(cmd.Flags()), "")
			if err := a.notify(n.Text, n.IsError()); err != nil {
				return err
			}
			a.printReviews(rows)
			return nil
		},
	}
	r.bind(cmd.Flags())
	return cmd
}

func (a *app) reviewsDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n := a.reviewsView().Delete(cmd.Context(), args[0], "")
			return a.notify(n.Text, n.IsError())
		},
	}
}

func (a *app) printReviews(rows []tracker.ReviewRow) {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.ID, r.GameTitle, strconv.Itoa(r.Score), formatFloat(r.HoursPlayed), string(r.Difficulty), yesNo(r.WouldRecommend), r.Text})
	}
	table(a.out, []string{"id", "game", "score", "hours", "difficulty", "recommend", "text"}, out)
}
