// Package remp provides types, interfaces, and helpers for working with the
// REMP CRM JSON API.
//
// # Overview
//
// The remp package defines the response envelope, the success predicate, the
// token rotation outcome, the typed error taxonomy and the interfaces of the
// endpoint clients (UserClient, UsersClient, SubscriptionsClient,
// RecurrentPaymentsClient). A concrete implementation is provided by the
// rempclient package. Most consumers import rempclient to construct a client
// and then use the interfaces exposed here.
//
// Getting a client
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
//	  api, err := rempclient.New(&remp.Config{Server: "https://crm.press", Token: "api-token"})
//	  if err != nil { log.Fatal(err) }
//
//	  env, err := api.Users().Email(ctx, map[string]string{"email": "reader@example.com"})
//	  if err != nil { log.Fatal(err) }
//	  _ = env
//	}
//
// # Envelopes
//
// Every call resolves with a Result whose Envelope is the decoded JSON body.
// An envelope is successful iff its "status" field is exactly "ok". An
// unsuccessful envelope is not an error: it is returned as data, and the
// endpoint clients collapse it to nil or false through ResultOrNull and
// ResultOrBoolean.
//
// # Token rotation
//
// A successful envelope may carry a user token under access.token. The token
// is returned in Result.Rotation and cached on the client for the most
// recently completed call. Continue the session with a new client:
//
//	login, err := api.Post(ctx, "/api/v1/users/login", creds, nil)
//	if err != nil { return err }
//	user, err := api.WithRotation(login.Rotation)
//
// # Errors
//
// Transport and protocol failures are returned as *Error with one of three
// kinds: http-failure (status other than 200 and not accepted for the call),
// remp-failure (connection or stream failure) and decode-failure (malformed
// JSON). Use IsHTTPFailure, IsRempFailure, IsDecodeFailure, KindOf and
// StatusCode to branch on them.
//
// # Interceptors and observability
//
// InterceptorChain runs request and response interceptors around every call.
// The package ships interceptors for logging, static headers, request IDs,
// in-memory metrics, Prometheus metrics and NATS request events.
package remp
