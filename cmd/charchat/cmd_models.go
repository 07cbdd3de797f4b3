package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/isasumer/character-chat-app/src/aisdk"
	"github.com/isasumer/character-chat-app/src/groqclient"
)

// ModelCmd manages model operations
type ModelCmd struct {
	List ModelListCmd `cmd:"" default:"1" help:"List available models"`
	Test ModelTestCmd `cmd:"" help:"Test a model with a simple prompt"`
}

// ModelListCmd lists the completion models the provider offers
type ModelListCmd struct {
	Format string `help:"Output format (table, json)" default:"table"`
}

func (c *ModelListCmd) Run(cli *CLI) error {
	client, _, err := newModelClient(cli)
	if err != nil {
		return err
	}

	models, err := client.GetModels(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	switch c.Format {
	case "json":
		return printModelsJSON(models)
	case "table":
		return printModelsTable(models)
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}
}

// ModelTestCmd sends one prompt through the streaming endpoint and prints
// the assembled response
type ModelTestCmd struct {
	Model  string `arg:"" optional:"" help:"Model ID (defaults to the configured model)"`
	Prompt string `help:"Test prompt" default:"Introduce yourself in one sentence."`
	Raw    bool   `help:"Print only the response text"`
}

func (c *ModelTestCmd) Run(cli *CLI) error {
	client, cfg, err := newModelClient(cli)
	if err != nil {
		return err
	}

	modelID := c.Model
	if modelID == "" {
		modelID = cfg
	}

	modelClient, err := client.Model(context.Background(), modelID)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	maxTokens := 256
	temperature := 0.7
	req := &aisdk.ChatCompletionRequest{
		Messages: []*aisdk.Message{
			{Role: aisdk.RoleUser, Content: c.Prompt},
		},
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Stream:      true,
	}

	stream, err := modelClient.CreateChatCompletionStream(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to create chat completion stream: %w", err)
	}

	if c.Raw {
		content, err := aisdk.CollectStreamContent(stream)
		if err != nil {
			return fmt.Errorf("stream failed: %w", err)
		}
		fmt.Println(content)
		return nil
	}

	resp, err := aisdk.AggregateStream(stream)
	if err != nil {
		return fmt.Errorf("stream failed: %w", err)
	}

	fmt.Printf("Model: %s\n", resp.Model)
	fmt.Printf("Prompt: %s\n\n", c.Prompt)
	if len(resp.Choices) > 0 {
		fmt.Printf("Response: %s\n", resp.Choices[0].Message.Content)
		if resp.Choices[0].FinishReason != "" {
			fmt.Printf("Finish reason: %s\n", resp.Choices[0].FinishReason)
		}
	}
	return nil
}

// newModelClient builds a Groq client from the resolved config and returns
// the configured default model alongside it.
func newModelClient(cli *CLI) (*groqclient.Client, string, error) {
	cfg, err := loadConfig(cli)
	if err != nil {
		return nil, "", err
	}
	if cfg.API.APIKey == "" {
		return nil, "", groqclient.ErrNoAPIKey
	}

	client := groqclient.NewClient(groqclient.Config{
		APIKey:  cfg.API.APIKey,
		BaseURL: cfg.API.BaseURL,
		Logger:  createCLILogger(cli.LogLevel),
	})
	return client, cfg.API.Model, nil
}

func printModelsJSON(models []*aisdk.ModelInfo) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(models)
}

func printModelsTable(models []*aisdk.ModelInfo) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tOWNER\tCONTEXT\tACTIVE")
	for _, m := range models {
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", m.ID, m.OwnedBy, m.ContextWindow, m.Active)
	}
	return w.Flush()
}
