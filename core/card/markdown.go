package card

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Markdown renders a human readable summary of the card. Card editors often
// write creator notes as HTML; those are converted to Markdown.
func (c *Card) Markdown() (string, error) {
	var b strings.Builder

	name := c.Data.Name
	if name == "" {
		name = "Unnamed character"
	}
	fmt.Fprintf(&b, "# %s\n", name)

	var meta []string
	if c.Spec != "" {
		spec := c.Spec
		if c.SpecVersion != "" {
			spec += " " + c.SpecVersion
		}
		meta = append(meta, "spec: "+spec)
	} else {
		meta = append(meta, "spec: v1")
	}
	if c.Data.Creator != "" {
		meta = append(meta, "creator: "+c.Data.Creator)
	}
	if c.Data.CharacterVersion != "" {
		meta = append(meta, "version: "+c.Data.CharacterVersion)
	}
	fmt.Fprintf(&b, "\n_%s_\n", strings.Join(meta, " · "))

	if len(c.Data.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(c.Data.Tags, ", "))
	}

	section(&b, "Description", c.Data.Description)
	section(&b, "Personality", c.Data.Personality)
	section(&b, "Scenario", c.Data.Scenario)
	section(&b, "First message", c.Data.FirstMessage)

	if len(c.Data.AlternateGreetings) > 0 {
		b.WriteString("\n## Alternate greetings\n\n")
		for i, g := range c.Data.AlternateGreetings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, oneLine(g))
		}
	}

	section(&b, "Example messages", c.Data.MessageExample)
	section(&b, "System prompt", c.Data.SystemPrompt)
	section(&b, "Post-history instructions", c.Data.PostHistoryInstructions)

	if notes := strings.TrimSpace(c.Data.CreatorNotes); notes != "" {
		converted, err := htmltomarkdown.ConvertString(notes)
		if err != nil {
			return "", fmt.Errorf("convert creator notes: %w", err)
		}
		section(&b, "Creator notes", converted)
	}

	return b.String(), nil
}

func section(b *strings.Builder, title, body string) {
	body = strings.TrimSpace(body)
	if body == "" {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n%s\n", title, body)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
