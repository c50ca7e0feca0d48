package ports

import "context"

// Port: the external optimization model boundary.
// One call issues exactly one request and returns the raw textual reply;
// the caller owns all interpretation of that text.
type ModelClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
