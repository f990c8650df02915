// Package prompt собирает текст запроса к провайдеру генерации из набора
// флагов стилей документирования и исходного кода пользователя.
//
// Функция Compose чистая и тотальная: любая комбинация флагов дает
// корректную строку, порядок фрагментов всегда канонический.
package prompt

import "strings"

// Flags набор флагов стилей документирования из запроса пользователя.
// Допускается любое сочетание, включая все сразу и ни одного.
type Flags struct {
	Explain           bool
	InlineComments    bool
	DocStrings        bool
	CodeBlockComments bool
	APIDocumentation  bool
	Optimize          bool
}

// Тексты инструкций для каждого стиля документирования.
const (
	explainFragment           = "Explain the following source code and sent me the explanation and the source code"
	inlineCommentsFragment    = "Document the source code using Inline Comments and sent me the documentation and the source code"
	docStringsFragment        = "Document the source code using DocStrings and sent me the documentation and the source code I have sent you"
	codeBlockCommentsFragment = "Document the source code using Code Block Comments and sent me the documentation and the source code I have sent you"
	apiDocumentationFragment  = "Document the source code using API Documentation and sent me the documentation and the source code I have sent you"
	optimizeFragment          = "Check there are possibilities to optimize the source code and sent me the optimization suggestions and the source code"

	// defaultFragment используется, когда не выбран ни один стиль.
	defaultFragment = "Explain the following code and sent me the explanation and the code"
)

// Compose формирует итоговый текст запроса: выбранные инструкции в каноническом
// порядке через ", ", затем пустая строка и исходный код.
func Compose(flags Flags, code string) string {
	var fragments []string
	if flags.Explain {
		fragments = append(fragments, explainFragment)
	}
	if flags.InlineComments {
		fragments = append(fragments, inlineCommentsFragment)
	}
	if flags.DocStrings {
		fragments = append(fragments, docStringsFragment)
	}
	if flags.CodeBlockComments {
		fragments = append(fragments, codeBlockCommentsFragment)
	}
	if flags.APIDocumentation {
		fragments = append(fragments, apiDocumentationFragment)
	}
	if flags.Optimize {
		fragments = append(fragments, optimizeFragment)
	}
	if len(fragments) == 0 {
		fragments = []string{defaultFragment}
	}

	return strings.Join(fragments, ", ") + "\n\n" + code
}
