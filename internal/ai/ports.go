package ai

import "context"

// AI — the upstream model boundary. Knows nothing about loot or Discord.
type AI interface {
	GenerateGrounded(
		ctx context.Context,
		systemPrompt string,
		userPrompt string,
	) (string, error)
}

// Fetcher runs one logical JSON exchange against an HTTP endpoint,
// retrying transient failures per its policy, and decodes the 200
// body into out.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest, out any) error
}

// FetchRequest — everything one attempt needs. The Fetcher never
// mutates it between retries.
type FetchRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}
