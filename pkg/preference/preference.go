// Package preference holds the pairwise comparison records a
// preference-optimization run trains on: a prompt plus a chosen and a
// rejected conversation transcript.
package preference

import (
	"fmt"
)

// Roles a conversation turn can carry.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Comparison is a single preference pair. Chosen and Rejected are full
// transcripts sharing the same prompt; the trainer scores the final
// assistant turn of each.
type Comparison struct {
	Prompt   string    `json:"prompt"`
	Chosen   []Message `json:"chosen"`
	Rejected []Message `json:"rejected"`
}

// ReflectionRow is one raw line of a self-reflection dataset: a question the
// model previously failed, its failed reasoning, and a preferred plus a
// dispreferred reflection on that failure.
type ReflectionRow struct {
	Question            string `json:"question"`
	FirstTrialReasoning string `json:"first_trial_reasoning"`
	ReflectionChosen    string `json:"reflection_chosen"`
	ReflectionRejected  string `json:"reflection_rejected"`
}

// ReflectionPrompt renders the user prompt asking the model to diagnose a
// failed attempt and plan a retry.
func ReflectionPrompt(question, priorAttempt string) string {
	return "You are an advanced reasoning agent that can improve based on self-reflection. " +
		"You will be given a previous reasoning trial in which you were given a question to answer. " +
		"You were unsuccessful in answering the question. In a few sentences, Diagnose a possible reason for failure " +
		"and devise a new, concise, high-level plan that aims to mitigate the same failure. Use complete sentences.\n\n" +
		fmt.Sprintf("Question: %s\n", question) +
		fmt.Sprintf("Previous trial and your incorrect solution: %s", priorAttempt)
}

// FromReflectionRow builds the single-turn comparison for a reflection row.
func FromReflectionRow(row ReflectionRow) Comparison {
	prompt := ReflectionPrompt(row.Question, row.FirstTrialReasoning)
	return Comparison{
		Prompt: prompt,
		Chosen: []Message{
			{Role: RoleUser, Content: prompt},
			{Role: RoleAssistant, Content: row.ReflectionChosen},
		},
		Rejected: []Message{
			{Role: RoleUser, Content: prompt},
			{Role: RoleAssistant, Content: row.ReflectionRejected},
		},
	}
}

// Validate checks the structural invariants the trainer assumes: both
// transcripts present, roles alternating after an optional leading system
// turn, an assistant turn last, and the prompt matching the first user turn.
func (c Comparison) Validate() error {
	if c.Prompt == "" {
		return fmt.Errorf("empty prompt")
	}

	if err := validateTranscript(c.Prompt, c.Chosen); err != nil {
		return fmt.Errorf("chosen transcript: %w", err)
	}
	if err := validateTranscript(c.Prompt, c.Rejected); err != nil {
		return fmt.Errorf("rejected transcript: %w", err)
	}

	return nil
}

func validateTranscript(prompt string, transcript []Message) error {
	if len(transcript) == 0 {
		return fmt.Errorf("empty")
	}

	turns := transcript
	if turns[0].Role == RoleSystem {
		turns = turns[1:]
		if len(turns) == 0 {
			return fmt.Errorf("only a system turn")
		}
	}

	for i, m := range turns {
		want := RoleUser
		if i%2 == 1 {
			want = RoleAssistant
		}
		if m.Role != want {
			return fmt.Errorf("turn %d has role %q, want %q", i, m.Role, want)
		}
		if m.Content == "" {
			return fmt.Errorf("turn %d has empty content", i)
		}
	}

	if turns[len(turns)-1].Role != RoleAssistant {
		return fmt.Errorf("last turn is not from the assistant")
	}

	if turns[0].Content != prompt {
		return fmt.Errorf("first user turn does not match the prompt")
	}

	return nil
}
