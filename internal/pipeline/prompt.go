// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"strings"
	"text/template"
)

// DeclineMessage is the fixed reply for questions outside the assistant's
// specialization. It is returned directly when retrieval finds nothing;
// the prompt instructs the model to use the same wording when a question
// is off-topic despite matching context.
const DeclineMessage = "I'm specialized in NASA BioTrek space biology research. I can only answer questions about space biology, biotechnology in space, and related NASA research. Please ask me something about these topics."

var promptTemplate = template.Must(template.New("qa").Parse(`[INST] Your name is BioTrekBot. You are a specialized assistant for NASA BioTrek space biology research.

IMPORTANT: Only answer questions related to space biology, biotechnology in space, NASA research, or topics covered in your database.

If the question is NOT related to space biology or your knowledge base:
- Politely decline and explain your specialization
- Do NOT provide sources or references
- Example: "{{.Decline}}"

If the question IS relevant and you have information:
- Answer in less than {{.MaxWords}} words if possible
- Cite the sources provided in the context

If the question is relevant but you don't have enough information in the context:
- Say "I don't have enough information about this specific topic in my database."
- Do NOT make up information

CONTEXT: {{.Context}}
QUESTION: {{.Question}} [/INST]`))

// renderPrompt stuffs the retrieved unit texts and the question into the
// assistant prompt. Unit texts are joined by blank lines.
func renderPrompt(contexts []string, question string, maxWords int) (string, error) {
	var b strings.Builder
	err := promptTemplate.Execute(&b, struct {
		Decline  string
		MaxWords int
		Context  string
		Question string
	}{
		Decline:  DeclineMessage,
		MaxWords: maxWords,
		Context:  strings.Join(contexts, "\n\n"),
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return b.String(), nil
}
