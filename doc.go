// Package idprovider hands out integer identifiers to the objects of a larger
// data framework.
//
// Each named scope owns one provider. A provider first drains its reserved pool
// (last element first) and then draws random identifiers in [0, 1e11),
// regenerating any value it has already issued. Scopes never coordinate with
// each other, so identifiers are unique per scope only.
//
// The Service façade wires configuration, reserved pool loading, logging,
// tracing and metrics around the providers:
//
//	srv, _ := idprovider.New()
//	id, _ := srv.Pop(ctx)
//	jobs, _ := srv.Scope(ctx, "jobs")
//	next := jobs.Pop()
//
// There is no process-wide instance; construct a Service (or a bare
// provider.Provider) and pass it to the components that allocate identifiers.
package idprovider
