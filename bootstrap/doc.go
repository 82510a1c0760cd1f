// Package bootstrap runs a one-shot task with uniform lifecycle management.
//
// NewApp applies config defaults, validates the config and initializes the
// logger. RunTask then starts registered components, runs hooks and
// configure callbacks, executes the task and shuts everything down, also
// when SIGINT or SIGTERM arrives mid-task.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(observability.NewTracerComponent(tc))
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return run(ctx)
//	})
package bootstrap
