package router

import (
	"context"
	"fmt"
	"strings"
)

// contentTemplates maps a content type to its generation instruction.
// Unknown types fall through to the note template.
var contentTemplates = map[string]string{
	"email": "Write a complete email about: %s. Include a subject line, greeting, body and sign-off.",
	"essay": "Write a short structured essay about: %s. Use an introduction, two or three body paragraphs and a conclusion.",
	"poem":  "Write a poem about: %s.",
	"letter": "Write a formal letter about: %s. Include the conventional opening and closing.",
	"code":  "Write a program for: %s. Include brief usage notes as comments.",
	"note":  "Write a clear, well-organized note about: %s.",
}

// GenerateContent builds the type-specific prompt and routes it through
// the content category.
func (s *Service) GenerateContent(ctx context.Context, contentType, topic string, opts ContentOptions) GenerateResult {
	template, ok := contentTemplates[strings.ToLower(contentType)]
	if !ok {
		template = contentTemplates["note"]
	}

	prompt := fmt.Sprintf(template, topic)
	if opts.Recipient != "" {
		prompt += fmt.Sprintf(" It is addressed to %s.", opts.Recipient)
	}
	if opts.Tone != "" {
		prompt += fmt.Sprintf(" Use a %s tone.", opts.Tone)
	}

	return s.Generate(ctx, prompt, TaskContent)
}
