package email

// Message is one outbound email handed to a provider.
type Message struct {
	To       string
	From     string
	FromName string
	Subject  string
	Text     string
	HTML     string
}
