package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/isasumer/character-chat-app/src/app"
	"github.com/isasumer/character-chat-app/src/storage"
	"github.com/spf13/afero"
)

// SeedCmd populates the database with the stock characters
type SeedCmd struct {
	File  string `short:"f" help:"Seed from a JSON file of characters instead of the built-in set"`
	Force bool   `help:"Insert characters even if one with the same name already exists"`
}

func (s *SeedCmd) Run(cli *CLI) error {
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

	characters := stockCharacters
	if s.File != "" {
		characters, err = loadCharacterFile(afero.NewOsFs(), s.File)
		if err != nil {
			return err
		}
	}

	db := appInstance.Store.DB()
	seeded := 0
	for i := range characters {
		c := characters[i]

		if !s.Force {
			existing, err := storage.GetCharacterByName(ctx, db, c.Name)
			if err != nil {
				return err
			}
			if existing != nil {
				logger.Info("character already exists, skipping", "name", c.Name)
				continue
			}
		}

		if err := storage.CreateCharacter(ctx, db, &c); err != nil {
			return fmt.Errorf("failed to seed character %q: %w", c.Name, err)
		}
		fmt.Printf("seeded %s\n", c.Name)
		seeded++
	}

	fmt.Printf("done, %d character(s) inserted\n", seeded)
	return nil
}

// loadCharacterFile reads a JSON array of characters from disk.
func loadCharacterFile(fs afero.Fs, path string) ([]storage.Character, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	var characters []storage.Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, fmt.Errorf("failed to parse character file: %w", err)
	}

	for _, c := range characters {
		if c.Name == "" || c.SystemPrompt == "" {
			return nil, fmt.Errorf("character entries need at least name and system_prompt")
		}
	}
	return characters, nil
}
