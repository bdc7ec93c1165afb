// Package httpserver runs the MedCare HTTP handler with graceful shutdown.
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// HealthHandler serves liveness and readiness requests.
package httpserver
