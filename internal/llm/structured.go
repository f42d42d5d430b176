package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"transcript-agents/internal/schema"
)

// structuredInstruction is appended to every structured prompt. Some
// backends ignore the response format option, so the schema is restated
// in-band the way function-calling toolkits do.
const structuredInstruction = "\n\nIMPORTANT: Your response must be a valid JSON object that precisely matches this schema:\n%s\n\nDO NOT include any explanatory text outside the JSON."

// CallStructured runs a structured-output completion and decodes the
// response into out, retrying on malformed responses. The last decode or
// transport error is returned after maxRetries extra attempts.
func CallStructured(ctx context.Context, c Client, req Request, maxRetries int, out any) error {
	if req.Schema == nil {
		return fmt.Errorf("structured call requires a schema")
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	schemaJSON, err := json.MarshalIndent(req.Schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	req.Prompt += fmt.Sprintf(structuredInstruction, schemaJSON)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := c.Complete(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		if err := schema.Decode(content, out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
