// Package appengine holds the public types of the App Engine Admin API v1
// client: resource records, per-call options, resource-client interfaces,
// configuration, errors, interceptors, batch execution and response caching.
//
// Use gaeclient.New to obtain a Client:
//
//	client, err := gaeclient.New(ctx, &appengine.Config{UseDefaultCredentials: true})
//	if err != nil {
//		return err
//	}
//
//	version, err := client.Versions().Get(ctx, "myapp", "default", "v1",
//		appengine.NewCallOptions().WithView(appengine.VersionViewFull))
//
// Every optional call modifier is a pointer; a nil modifier never reaches the
// wire. The client-wide API key and quota user set with SetKey and
// SetQuotaUser apply to every later call unless the call's options carry
// their own.
//
// Setting Config.Cache to a MemoryCache or NATSKVCache serves repeated reads
// from the cache. Operation status is never cached.
package appengine
