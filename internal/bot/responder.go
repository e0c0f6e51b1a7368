package bot

import "github.com/bwmarrin/discordgo"

// Responder provides an abstraction for responding to Discord interactions.
// This interface enables testing handlers without a live Discord connection.
type Responder interface {
	// Respond sends a response to an interaction.
	Respond(response *discordgo.InteractionResponse) error
}

// Deferrer is implemented by responders that can acknowledge an interaction
// before the final response is ready. Discord drops interactions that are not
// acknowledged within three seconds.
type Deferrer interface {
	// Defer acknowledges the interaction. The next Respond edits the
	// deferred reply instead of creating a new one.
	Defer() error
}

// Defer acknowledges the interaction if r supports it.
func Defer(r Responder) error {
	if d, ok := r.(Deferrer); ok {
		return d.Defer()
	}
	return nil
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	deferred    bool
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Defer sends a deferred "thinking" reply.
func (r *DiscordResponder) Defer() error {
	if r.deferred {
		return nil
	}
	err := r.session.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}
	r.deferred = true
	return nil
}

// Respond sends a response to the interaction via Discord API.
// After Defer, the response replaces the deferred reply. Message flags cannot
// change at that point, so an ephemeral response becomes public.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	if !r.deferred {
		return r.session.InteractionRespond(r.interaction, response)
	}

	edit := &discordgo.WebhookEdit{}
	if data := response.Data; data != nil {
		if data.Content != "" {
			edit.Content = &data.Content
		}
		if len(data.Embeds) > 0 {
			edit.Embeds = &data.Embeds
		}
	}

	_, err := r.session.InteractionResponseEdit(r.interaction, edit)
	return err
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Deferred     bool
	Err          error
}

// Defer records that the interaction was deferred.
func (m *MockResponder) Defer() error {
	m.Deferred = true
	return m.Err
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}

var (
	_ Deferrer = (*DiscordResponder)(nil)
	_ Deferrer = (*MockResponder)(nil)
)
