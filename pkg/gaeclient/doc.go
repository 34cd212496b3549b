// Package gaeclient constructs App Engine Admin API v1 clients that
// implement the appengine.Client interface.
//
// It layers endpoint defaults, HTTP transport and authentication on top of
// the resource interfaces and types defined in the appengine package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/appengine-client/pkg/appengine"
//	  "github.com/fivetwenty-io/appengine-client/pkg/gaeclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Application default credentials (gcloud, metadata server or
//	  // GOOGLE_APPLICATION_CREDENTIALS).
//	  cli, err := gaeclient.NewWithDefaultCredentials(ctx)
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = gaeclient.NewWithToken(ctx, "ya29....")
//
//	  // Defaults apply to every later call.
//	  cli.SetQuotaUser("tenant-42")
//
//	  op, err := cli.Instances().Delete(ctx, "myapp", "default", "v1", "i-1", nil)
//	  if err != nil { log.Fatal(err) }
//
//	  _, err = cli.Operations().Wait(ctx, "myapp", op.Name)
//	}
//
// An empty Config.APIEndpoint selects https://appengine.googleapis.com.
package gaeclient
