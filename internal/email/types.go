package email

// Message - исходящее письмо
type Message struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData - данные для шаблонов писем
type TemplateData map[string]interface{}
