package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/tracker"
)

func (a *app) gamesCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "games", Short: "List and manage games"}
	cmd.AddCommand(a.gamesList(), a.gamesAdd(), a.gamesUpdate(), a.gamesSetCompleted("complete", true), a.gamesSetCompleted("reopen", false), a.gamesDelete())
	return cmd
}

func (a *app) library() *tracker.Library { return tracker.NewLibrary(a.api, a.log) }

func (a *app) gamesList() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games (all, completed or pending)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			games, err := a.library().Load(cmd.Context(), status)
			if err != nil {
				return a.fail("Failed to load games", err)
			}
			a.printGames(games)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", tracker.FilterAll, "all|completed|pending")
	return cmd
}

// gameFlags holds the game fields shared by add and update.
type gameFlags struct {
	title, genre, platform, developer, cover, description string
	year                                                  int
	completed                                             bool
}

func (g *gameFlags) bind(f *pflag.FlagSet) {
	f.StringVar(&g.title, "title", "", "game title")
	f.StringVar(&g.genre, "genre", "", "genre (run: tracker enums)")
	f.StringVar(&g.platform, "platform", "", "platform (run: tracker enums)")
	f.IntVar(&g.year, "year", 0, "release year (defaults to the current year)")
	f.StringVar(&g.developer, "developer", "", "developer")
	f.StringVar(&g.cover, "cover", "", "cover image URL")
	f.StringVar(&g.description, "description", "", "short description")
	f.BoolVar(&g.completed, "completed", false, "already finished")
}

// input carries only the flags set on the command line; the server fills or keeps the rest.
func (g *gameFlags) input(f *pflag.FlagSet) model.GameInput {
	var in model.GameInput
	if f.Changed("title") {
		in.Title = model.Ptr(g.title)
	}
	if f.Changed("genre") {
		in.Genre = model.Ptr(g.genre)
	}
	if f.Changed("platform") {
		in.Platform = model.Ptr(g.platform)
	}
	if f.Changed("year") {
		in.ReleaseYear = model.Ptr(g.year)
	}
	if f.Changed("developer") {
		in.Developer = model.Ptr(g.developer)
	}
	if f.Changed("cover") {
		in.CoverImageURL = model.Ptr(g.cover)
	}
	if f.Changed("description") {
		in.Description = model.Ptr(g.description)
	}
	if f.Changed("completed") {
		in.Completed = model.Ptr(g.completed)
	}
	return in
}

func (a *app) gamesAdd() *cobra.Command {
	var g gameFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := g.input(cmd.Flags())
			// genre and platform go out even when empty so the server reports them as missing.
			in.Genre = model.Ptr(g.genre)
			in.Platform = model.Ptr(g.platform)
			games, n := a.library().Save(cmd.Context(), "", in, tracker.FilterAll)
			if err := a.notify(n.Text, n.IsError()); err != nil {
				return err
			}
			a.printGames(games)
			return nil
		},
	}
	g.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) gamesUpdate() *cobra.Command {
	var g gameFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a game; unset flags keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			games, n := a.library().Save(cmd.Context(), args[0], g.input(cmd.Flags()), tracker.FilterAll)
			if err := a.notify(n.Text, n.IsError()); err != nil {
				return err
			}
			a.printGames(games)
			return nil
		},
	}
	g.bind(cmd.Flags())
	return cmd
}

func (a *app) gamesSetCompleted(use string, completed bool) *cobra.Command {
	short := "Mark a game as completed"
	if !completed {
		short = "Mark a game as pending"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n := a.library().SetCompleted(cmd.Context(), args[0], completed, tracker.FilterAll)
			return a.notify(n.Text, n.IsError())
		},
	}
}

func (a *app) gamesDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game and all of its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, n := a.library().Delete(cmd.Context(), args[0], tracker.FilterAll)
			return a.notify(n.Text, n.IsError())
		},
	}
}

func (a *app) printGames(games []model.Game) {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{g.ID, g.Title, string(g.Genre), string(g.Platform), strconv.Itoa(g.ReleaseYear), yesNo(g.Completed)})
	}
	table(a.out, []string{"id", "title", "genre", "platform", "year", "completed"}, rows)
}
