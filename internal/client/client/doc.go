// Package client contains the client-side transport and local storage
// bootstrap for ProfileKeeper.
//
// # Overview
//
//  1. Client is the transport-agnostic contract for the remote profile
//     store: Register, Login, Lookup, Update and Ping.
//  2. GRPCClient implements it over the profilekeeper.ProfileService gRPC
//     API. The access token obtained by Login is attached to every call by
//     a unary interceptor; gRPC status codes are mapped to sentinel errors.
//  3. InitDatabase and RunMigrations open the local SQLite cache database
//     and apply the embedded goose migrations.
//
// # Error Handling
//
// Callers match errors with errors.Is against ErrUnavailable,
// ErrUnauthorized, common.ErrorNotFound and common.ErrorAlreadyExists.
// Anything else is wrapped as "rpc error: ...".
package client
