package ragservice

import (
	"strings"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/llm"
)

// systemPrompt pins the model to the retrieved context and names the
// sentinel it must emit when the context does not contain the answer.
const systemPrompt = "Answer ONLY using the provided context. If the answer is missing, respond " +
	"with 'Not in docs.' Keep replies concise."

// buildMessages assembles the grounded prompt: the system instruction
// with the concatenated chunk texts, then the user's question.
func buildMessages(contexts []string, question string) []llm.Message {
	return []llm.Message{
		{
			Role:    llm.RoleSystem,
			Content: systemPrompt + "\n\nContext:\n" + strings.Join(contexts, "\n\n"),
		},
		{
			Role:    llm.RoleUser,
			Content: question,
		},
	}
}
