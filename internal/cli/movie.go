package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jterhune/watchvault/internal/model"
)

func newMovieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movie",
		Short: "Watchlist commands",
	}

	cmd.AddCommand(newMovieAddCmd())
	cmd.AddCommand(newMovieListCmd())
	cmd.AddCommand(newMovieGetCmd())
	cmd.AddCommand(newMovieUpdateCmd())
	cmd.AddCommand(newMovieDeleteCmd())
	cmd.AddCommand(newMovieFavoriteCmd())

	return cmd
}

func newMovieAddCmd() *cobra.Command {
	var (
		title, mediaType, genres, status, platform, poster string
		rating, year                                       int
		favorite                                           bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to your watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"title": title,
				"type":  mediaType,
				"genre": splitGenres(genres),
			}
			if status != "" {
				req["watchStatus"] = status
			}
			if rating != 0 {
				req["rating"] = rating
			}
			if platform != "" {
				req["streamingPlatform"] = platform
			}
			if year != 0 {
				req["releaseYear"] = year
			}
			if poster != "" {
				req["posterUrl"] = poster
			}
			if favorite {
				req["isFavorite"] = true
			}

			var result Movie
			if err := client.Post("/api/v1/movies", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title (required)")
	cmd.Flags().StringVar(&mediaType, "type", "Movie", "Media type: Movie, Series")
	cmd.Flags().StringVar(&genres, "genre", "", "Comma-separated genres (required)")
	cmd.Flags().StringVar(&status, "status", "", "Watch status: Plan to Watch, Watching, Completed")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-10")
	cmd.Flags().StringVar(&platform, "platform", "", "Streaming platform")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	cmd.Flags().StringVar(&poster, "poster", "", "Poster URL")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark as favorite")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("genre")

	return cmd
}

func splitGenres(s string) []string {
	return model.ParseGenres(s)
}

func newMovieListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Movie

			if err := client.Get("/api/v1/movies", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMovieGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a watchlist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Movie

			if err := client.Get("/api/v1/movies/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMovieUpdateCmd() *cobra.Command {
	var (
		title, mediaType, genres, status, platform, poster string
		rating, year                                       int
		favorite                                           bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields on a watchlist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Send only the flags that were set so unset fields keep
			// their current values server-side
			req := map[string]any{}
			if cmd.Flags().Changed("title") {
				req["title"] = title
			}
			if cmd.Flags().Changed("type") {
				req["type"] = mediaType
			}
			if cmd.Flags().Changed("genre") {
				req["genre"] = splitGenres(genres)
			}
			if cmd.Flags().Changed("status") {
				req["watchStatus"] = status
			}
			if cmd.Flags().Changed("rating") {
				req["rating"] = rating
			}
			if cmd.Flags().Changed("platform") {
				req["streamingPlatform"] = platform
			}
			if cmd.Flags().Changed("year") {
				req["releaseYear"] = year
			}
			if cmd.Flags().Changed("poster") {
				req["posterUrl"] = poster
			}
			if cmd.Flags().Changed("favorite") {
				req["isFavorite"] = favorite
			}

			if len(req) == 0 {
				return fmt.Errorf("no fields to update")
			}

			var result Movie
			if err := client.Put("/api/v1/movies/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&mediaType, "type", "", "Media type: Movie, Series")
	cmd.Flags().StringVar(&genres, "genre", "", "Comma-separated genres")
	cmd.Flags().StringVar(&status, "status", "", "Watch status: Plan to Watch, Watching, Completed")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-10")
	cmd.Flags().StringVar(&platform, "platform", "", "Streaming platform")
	cmd.Flags().IntVar(&year, "year", 0, "Release year")
	cmd.Flags().StringVar(&poster, "poster", "", "Poster URL")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark as favorite")

	return cmd
}

func newMovieDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a watchlist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			if err := client.Delete("/api/v1/movies/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(result.Message)
			return nil
		},
	}
}

func newMovieFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle favorite on a watchlist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var current Movie
			if err := client.Get("/api/v1/movies/"+args[0], &current); err != nil {
				return err
			}

			req := map[string]any{"isFavorite": !current.IsFavorite}

			var result Movie
			if err := client.Put("/api/v1/movies/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if result.IsFavorite {
				out.PrintMessage(fmt.Sprintf("%s marked as favorite", result.Title))
			} else {
				out.PrintMessage(fmt.Sprintf("%s removed from favorites", result.Title))
			}
			return nil
		},
	}
}
