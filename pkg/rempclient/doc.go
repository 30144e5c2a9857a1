// Package rempclient provides the primary entry point for constructing a
// REMP CRM API client that implements the remp.Client interface.
//
// It layers server normalization, default logging and environment
// configuration on top of the request engine and endpoint clients. Most
// applications import rempclient to build a client and then use the returned
// remp.Client to reach User(), Users(), Subscriptions() and
// RecurrentPayments().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/remp-client/pkg/remp"
//	  "github.com/fivetwenty-io/remp-client/pkg/rempclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Server-to-server calls use the API token.
//	  api, err := rempclient.New(&remp.Config{
//	    Server:  "crm.press",          // https:// is assumed
//	    Token:   "api-token",
//	    Referer: "https://shop.press", // lets the CRM recognise the caller
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Log a reader in and continue with their user token.
//	  login, err := api.Users().Login(ctx, map[string]string{
//	    "email":    "reader@example.com",
//	    "password": "secret",
//	  })
//	  if err != nil || login == nil { log.Fatal("login failed") }
//
//	  user, err := api.DeriveWithRotatedToken()
//	  if err != nil { log.Fatal(err) }
//
//	  info, err := user.User().Info(ctx)
//	  _ = info
//	}
//
// Environment
//
// NewFromEnv reads REMP_SERVER, REMP_TOKEN, REMP_VERBOSE, REMP_REFERER,
// REMP_ENCODING, REMP_USER_AGENT, REMP_HTTP_TIMEOUT and REMP_LOG_LEVEL.
package rempclient
