// Package httpserver runs an http.Server with graceful shutdown and exposes a
// JSON health check handler.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// Run returns nil after a graceful shutdown. Startup failures wrap ErrStart,
// shutdown failures wrap ErrShutdown.
package httpserver
