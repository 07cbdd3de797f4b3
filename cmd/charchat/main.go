package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	APIKey   string `env:"GROQ_API_KEY" help:"Groq API key"`
	BaseURL  string `help:"Custom completion API base URL"`
	LogLevel string `default:"warn" help:"Log level"`

	Serve      ServeCmd      `cmd:"" help:"Run the chat relay server"`
	Chat       ChatCmd       `cmd:"" help:"Chat with a character from the terminal"`
	Seed       SeedCmd       `cmd:"" help:"Seed the database with the stock characters"`
	Characters CharactersCmd `cmd:"" help:"List available characters"`
	Model      ModelCmd      `cmd:"" help:"Inspect and test completion models"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("charchat"),
		kong.Description("Character chat service powered by Groq"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
