package card

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Known spec identifiers.
const (
	SpecV2 = "chara_card_v2"
	SpecV3 = "chara_card_v3"
)

// ErrNotObject is returned when the recovered value is not a JSON object.
var ErrNotObject = errors.New("characard: card is not a JSON object")

// Card is a normalised character card.
type Card struct {
	// Spec is empty for V1 cards.
	Spec        string `json:"spec,omitempty" yaml:"spec,omitempty"`
	SpecVersion string `json:"spec_version,omitempty" yaml:"spec_version,omitempty"`
	Data        Data   `json:"data" yaml:"data"`
}

// Data holds the persona fields shared by every card version.
type Data struct {
	Name                    string         `json:"name" yaml:"name"`
	Description             string         `json:"description,omitempty" yaml:"description,omitempty"`
	Personality             string         `json:"personality,omitempty" yaml:"personality,omitempty"`
	Scenario                string         `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	FirstMessage            string         `json:"first_mes,omitempty" yaml:"first_mes,omitempty"`
	MessageExample          string         `json:"mes_example,omitempty" yaml:"mes_example,omitempty"`
	CreatorNotes            string         `json:"creator_notes,omitempty" yaml:"creator_notes,omitempty"`
	SystemPrompt            string         `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`
	PostHistoryInstructions string         `json:"post_history_instructions,omitempty" yaml:"post_history_instructions,omitempty"`
	AlternateGreetings      []string       `json:"alternate_greetings,omitempty" yaml:"alternate_greetings,omitempty"`
	Tags                    []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Creator                 string         `json:"creator,omitempty" yaml:"creator,omitempty"`
	CharacterVersion        string         `json:"character_version,omitempty" yaml:"character_version,omitempty"`
	Extensions              map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// FromValue builds a Card from a value produced by the parse package.
//
// An object with a "data" object and a "spec" string is read as V2/V3;
// anything else that is an object is read as V1. V1 cards store the creator
// notes under "creatorcomment", which is honoured when "creator_notes" is
// absent.
func FromValue(v any) (*Card, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}

	c := &Card{}
	fields := obj
	if data, isObj := obj["data"].(map[string]any); isObj {
		if spec, isStr := obj["spec"].(string); isStr {
			c.Spec = spec
			c.SpecVersion = stringField(obj, "spec_version")
			fields = data
		}
	}

	c.Data = Data{
		Name:                    stringField(fields, "name"),
		Description:             stringField(fields, "description"),
		Personality:             stringField(fields, "personality"),
		Scenario:                stringField(fields, "scenario"),
		FirstMessage:            stringField(fields, "first_mes"),
		MessageExample:          stringField(fields, "mes_example"),
		CreatorNotes:            stringField(fields, "creator_notes"),
		SystemPrompt:            stringField(fields, "system_prompt"),
		PostHistoryInstructions: stringField(fields, "post_history_instructions"),
		AlternateGreetings:      stringsField(fields, "alternate_greetings"),
		Tags:                    stringsField(fields, "tags"),
		Creator:                 stringField(fields, "creator"),
		CharacterVersion:        stringField(fields, "character_version"),
	}
	if c.Data.CreatorNotes == "" {
		c.Data.CreatorNotes = stringField(fields, "creatorcomment")
	}
	if ext, isObj := fields["extensions"].(map[string]any); isObj {
		c.Data.Extensions = ext
	}

	return c, nil
}

// IsV1 reports whether the card had no spec wrapper.
func (c *Card) IsV1() bool {
	return c.Spec == ""
}

// stringField reads key as a string. Numbers keep their literal form, so a
// character_version of 1.2 becomes "1.2". Other types yield "".
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func stringsField(obj map[string]any, key string) []string {
	items, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, isStr := item.(string); isStr {
			out = append(out, s)
		}
	}
	return out
}
