// Package bootstrap runs a beankit application around a di.Container.
//
// An App loads nothing by itself: the caller passes a typed config (usually
// one embedding config.AppConfig) and bootstrap applies defaults, validates,
// initializes the logger and builds the container from the container
// section (eager order, cycle policy).
//
// # Lifecycle
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnRegister(registerBeans)
//	app.OnStop(flush)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    return di.MustResolve[*Runner](app.Container).Run(ctx)
//	})
//
// Registration callbacks run first, then Startup creates eager singletons,
// then OnStart and OnReady hooks run and a bean summary is printed. On
// shutdown OnStop hooks run before the container destroys its singletons.
package bootstrap
