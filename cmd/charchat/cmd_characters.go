package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/isasumer/character-chat-app/src/app"
	"github.com/isasumer/character-chat-app/src/storage"
)

// CharactersCmd lists the characters available for chat
type CharactersCmd struct {
	Verbose bool `short:"v" help:"Show system prompts as well"`
}

func (c *CharactersCmd) Run(cli *CLI) error {
	logger := createCLILogger(cli.LogLevel)

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	ctx := context.Background()
	appInstance, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	characters, err := storage.ListCharacters(ctx, appInstance.Store.DB())
	if err != nil {
		return err
	}
	if len(characters) == 0 {
		fmt.Println("no characters found, run `charchat seed` first")
		return nil
	}

	nameStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))

	for _, ch := range characters {
		fmt.Println(nameStyle.Render(ch.Name))
		fmt.Printf("  %s\n", ch.Description)
		if ch.Personality != nil {
			fmt.Printf("  %s\n", mutedStyle.Render(*ch.Personality))
		}
		if c.Verbose {
			fmt.Printf("  %s\n", mutedStyle.Render(ch.SystemPrompt))
		}
		fmt.Println()
	}
	return nil
}
