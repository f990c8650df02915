package models

// GenerateRequest описывает один запрос на генерацию документации:
// исходный код и набор флагов стилей документирования.
// Запрос существует только на время обработки и нигде не сохраняется.
type GenerateRequest struct {
	Prompt            string `json:"prompt" validate:"required"`
	Explain           bool   `json:"explain"`
	InlineComments    bool   `json:"inlineComments"`
	DocStrings        bool   `json:"docStrings"`
	CodeBlockComments bool   `json:"codeBlockComments"`
	APIDocumentation  bool   `json:"apiDocumentation"`
	Optimize          bool   `json:"optimize"`
}

// Usage текущее потребление дневного лимита пользователем.
type Usage struct {
	Email             string `json:"email"`
	Username          string `json:"username"`
	RequestsToday     int    `json:"requests_today"`
	RequestsRemaining int    `json:"requests_remaining"`
	DailyLimit        int    `json:"daily_limit"`
}
