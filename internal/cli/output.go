package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Movie:
		o.printMovie(v)
	case []Movie:
		o.printMovieList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines token and username
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Movie response type
type Movie struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Type              string   `json:"type"`
	Genre             []string `json:"genre"`
	Rating            int      `json:"rating,omitempty"`
	WatchStatus       string   `json:"watchStatus"`
	StreamingPlatform string   `json:"streamingPlatform,omitempty"`
	ReleaseYear       int      `json:"releaseYear,omitempty"`
	PosterURL         string   `json:"posterUrl,omitempty"`
	IsFavorite        bool     `json:"isFavorite"`
	UserID            string   `json:"userId"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	fmt.Printf("Logged in as: %s\n", a.Username)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printMovie(m Movie) {
	fmt.Printf("%s (%s)\n", m.Title, m.ID)
	fmt.Printf("Type: %s\n", m.Type)
	if len(m.Genre) > 0 {
		fmt.Printf("Genre: %s\n", strings.Join(m.Genre, ", "))
	}
	fmt.Printf("Status: %s\n", m.WatchStatus)
	if m.Rating > 0 {
		fmt.Printf("Rating: %d/10\n", m.Rating)
	}
	if m.StreamingPlatform != "" {
		fmt.Printf("Platform: %s\n", m.StreamingPlatform)
	}
	if m.ReleaseYear > 0 {
		fmt.Printf("Released: %d\n", m.ReleaseYear)
	}
	if m.PosterURL != "" {
		fmt.Printf("Poster: %s\n", m.PosterURL)
	}
	if m.IsFavorite {
		fmt.Println("Favorite: yes")
	}
}

func (o *Output) printMovieList(movies []Movie) {
	if len(movies) == 0 {
		fmt.Println("No entries in your watchlist")
		return
	}

	fmt.Printf("Watchlist (%d):\n", len(movies))
	for _, m := range movies {
		favStr := ""
		if m.IsFavorite {
			favStr = " *"
		}
		ratingStr := ""
		if m.Rating > 0 {
			ratingStr = fmt.Sprintf(", %d/10", m.Rating)
		}
		fmt.Printf("  - %s [%s] (%s%s)%s\n", m.Title, m.Type, m.WatchStatus, ratingStr, favStr)
		fmt.Printf("    id: %s\n", m.ID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
