package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/nulls"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawEvent struct {
	Id       int    `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Duration int    `mapstructure:"duration"`
	Area     string `mapstructure:"area"`
	Family   string `mapstructure:"family"`
}

type RawParticipant struct {
	Name   string `mapstructure:"name"`
	Events []int  `mapstructure:"events"`
}

type RawMeetInput struct {
	Slots        int              `mapstructure:"slots"`
	Events       []RawEvent       `mapstructure:"events"`
	Participants []RawParticipant `mapstructure:"participants"`
}

// InputFromFile reads a meet from a JSON or YAML document (chosen by extension)
func InputFromFile(file string) (Meet, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Meet{}, err
	}

	var document map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &document)
	default:
		err = json.Unmarshal(bytes, &document)
	}
	if err != nil {
		return Meet{}, fmt.Errorf("cannot parse %v: %w", file, err)
	}

	var rawInput RawMeetInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &rawInput,
		ErrorUnused: true,
	})
	if err != nil {
		return Meet{}, err
	}
	if err := decoder.Decode(document); err != nil {
		return Meet{}, newConfigurationError("%v: %v", file, err)
	}

	return ProcessRawInput(rawInput)
}

func ProcessRawInput(rawInput RawMeetInput) (Meet, error) {
	meet := Meet{
		Slots: rawInput.Slots,
		Events: lo.Map(rawInput.Events, func(rawEvent RawEvent, _ int) Event {
			family := nulls.String{}
			if rawEvent.Family != "" {
				family = nulls.NewString(rawEvent.Family)
			}
			return Event{
				ID:       rawEvent.Id,
				Name:     rawEvent.Name,
				Duration: rawEvent.Duration,
				Area:     rawEvent.Area,
				Family:   family,
			}
		}),
		Participants: lo.Map(rawInput.Participants, func(rawParticipant RawParticipant, _ int) Participant {
			return Participant{
				Name:     rawParticipant.Name,
				EventIDs: rawParticipant.Events,
			}
		}),
	}

	if err := meet.Validate(); err != nil {
		return Meet{}, err
	}
	return meet, nil
}
