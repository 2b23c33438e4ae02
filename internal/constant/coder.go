package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	CoderAgentName     = "CODER"
	CoderAgentCategory = "DEVELOPER"

	CoderAgentDescription = "Generates code from natural language requirements using project knowledge."
)
