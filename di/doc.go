// Package di is a dependency injection container driven by descriptors.
//
// A descriptor declares how to build one bean: its type, scope (Singleton or
// Prototype), init mode (Eager or Lazy), constructor dependencies, setter and
// field injections, lifecycle hooks, qualifier and primary flag. Descriptors
// are registered explicitly, then Startup validates the whole graph and
// creates eager singletons.
//
// # Registration
//
//	c := di.New(di.WithLogger(log))
//	di.Define[*Address]("address").
//	    Value(&Address{City: "Surat", State: "Guj"}).
//	    Primary().
//	    Register(c)
//	di.Define[*Address]("secondaryAddress").
//	    Value(&Address{City: "Ahmedabad", State: "Guj"}).
//	    Qualifier("secondary_address").
//	    Register(c)
//
// # Startup and lookup
//
//	if err := c.Startup(ctx, di.InRegistrationOrder); err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	addr := di.MustResolve[*Address](c)                            // primary
//	other, err := di.ResolveQualified[*Address](c, "secondary_address")
//
// # Resolution rules
//
// A qualified lookup picks the descriptor declaring that qualifier, or the
// one whose id equals it. An unqualified lookup picks the only candidate or
// the only primary one. Anything else is ErrUnsatisfiedDependency or
// ErrAmbiguousMatch; no other candidate is ever substituted.
//
// # Cycles
//
// With RejectCycles (default) every dependency cycle fails Startup with
// ErrCircularDependency and the full path. WithCyclePolicy(AllowSetterCycles)
// accepts cycles between singletons that pass through a setter or field
// injection; the raw singleton is handed out before its injections run.
// If that singleton then fails, the singletons created after the hand-out
// are evicted and destroyed.
//
// # Concurrency
//
// Lookups are safe from many goroutines. Singleton creation takes one
// container-wide lock at the outermost resolution; nested resolutions reuse
// it, so a singleton is never created twice. Factories receive their
// dependencies as Args and must not call the container. Lifecycle hooks may:
// a lookup from a hook continues the resolution that is running the hook.
package di
