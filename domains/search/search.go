package search

import (
	"context"
	"encoding/json"
)

type ResolutionKind string

const (
	ResolutionBang      ResolutionKind = "bang"
	ResolutionDefault   ResolutionKind = "default"
	ResolutionDashboard ResolutionKind = "dashboard"
	ResolutionCommand   ResolutionKind = "command"
)

// Resolution is the terminal state of resolving one query.
type Resolution struct {
	Kind     ResolutionKind
	Location string
	Trigger  string
	Terms    string
	// Outcome is set for ResolutionCommand only.
	Outcome *Outcome
}

type OutcomeLevel string

const (
	LevelSuccess OutcomeLevel = "success"
	LevelWarning OutcomeLevel = "warning"
	LevelError   OutcomeLevel = "error"
)

// Outcome is what a special command hands back: either a redirect or a short
// informational page.
type Outcome struct {
	Location string       `json:"location,omitempty"`
	Code     string       `json:"code,omitempty"`
	Level    OutcomeLevel `json:"level,omitempty"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message,omitempty"`
	Hint     string       `json:"hint,omitempty"`
	// Link is where an informational page sends the user next.
	Link string `json:"link,omitempty"`
}

func (o Outcome) IsRedirect() bool {
	return o.Location != ""
}

func RedirectOutcome(location string) Outcome {
	return Outcome{Location: location}
}

// Suggestions is serialized in the OpenSearch suggestion format:
// [query, completions, descriptions, urls].
type Suggestions struct {
	Query        string
	Triggers     []string
	Descriptions []string
}

func (s Suggestions) MarshalJSON() ([]byte, error) {
	triggers := s.Triggers
	if triggers == nil {
		triggers = []string{}
	}
	descriptions := s.Descriptions
	if descriptions == nil {
		descriptions = []string{}
	}
	return json.Marshal([]any{s.Query, triggers, descriptions, []string{}})
}

type ISearchUsecase interface {
	Resolve(ctx context.Context, query string) (Resolution, error)
}

type ISuggestionUsecase interface {
	Suggest(ctx context.Context, query string, limit int) Suggestions
	Rank(query string, limit int) Suggestions
}
