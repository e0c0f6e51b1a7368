package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/radionet/internal/bot"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/usecases"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// maxChoices is the number of autocomplete choices Discord accepts.
const maxChoices = 25

// AutocompleteHandler handles autocomplete requests.
type AutocompleteHandler struct {
	library usecases.LibraryProvider
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(library usecases.LibraryProvider) *AutocompleteHandler {
	return &AutocompleteHandler{
		library: library,
	}
}

// HandlePlay suggests stations for the play subcommand.
func (h *AutocompleteHandler) HandlePlay(i *discordgo.InteractionCreate, r bot.Responder) error {
	var query string
	for _, sub := range i.ApplicationCommandData().Options {
		for _, opt := range sub.Options {
			if opt.Name == "station" && opt.Focused {
				query = opt.StringValue()
			}
		}
	}

	// Don't search for very short queries
	if len([]rune(query)) < 2 {
		return respondChoices(r, nil)
	}

	result, err := h.library.Search(
		context.Background(),
		usecases.Query{domain.QueryFieldAny: {query}},
		nil,
		false,
	)
	if err != nil {
		slog.Warn("failed to search stations for autocomplete", "query", query, "error", err)
		return respondChoices(r, nil)
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(result.Tracks), maxChoices))
	for _, track := range result.Tracks {
		if len(choices) >= maxChoices {
			break
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(track.Name, 100),
			Value: track.URI,
		})
	}

	return respondChoices(r, choices)
}

func respondChoices(r bot.Responder, choices []*discordgo.ApplicationCommandOptionChoice) error {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
