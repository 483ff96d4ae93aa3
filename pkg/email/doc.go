// Package email delivers rendered HTML messages through Postmark, or writes
// them to a directory during development.
//
//	var sender email.EmailSender = email.NewDevSender(cfg.DevDir)
//	if cfg.UsePostmark() {
//		sender, err = email.NewPostmarkClient(cfg)
//	}
package email
