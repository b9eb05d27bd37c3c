// Package projcut is a project-template generation harness.  It materializes
// project instances from a cookiecutter-style template through an external
// renderer, initializes version control in them, runs build-tool targets
// against them and guarantees teardown of everything a session generated.
//
// End-users typically interact via the high-level Service façade exposed by
// the root package:
//
//	srv := projcut.New(projcut.WithTemplate("./template"))
//	defer srv.Close(ctx)
//	fx, err := srv.Fixtures().Acquire(ctx, nil)
//	if err != nil { ... }
//	defer fx.Release(ctx)
//	_, err = srv.Make().RunTarget(ctx, fx.Dir, maketool.TargetLintCI)
//
// For more details see the README and individual sub-packages.
package projcut
