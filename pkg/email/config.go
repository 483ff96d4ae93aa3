package email

// Config holds outbound mail settings. Without Postmark tokens the process
// falls back to DevSender writing into DevDir.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@authgate.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"support@authgate.local"`
	DevDir               string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`
}

// UsePostmark reports whether both Postmark tokens are configured.
func (c Config) UsePostmark() bool {
	return c.PostmarkServerToken != "" && c.PostmarkAccountToken != ""
}
