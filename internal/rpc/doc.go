// Package rpc defines the StackQuery gRPC surface: the Gateway service
// (accounts, sessions, tokens) and the Documents service (document CRUD and
// attachment presigning).
//
// Messages are google.protobuf.Struct and google.protobuf.Empty, so the
// services need no generated code. Payloads are ordinary Go structs with
// JSON tags converted by Encode and Decode. Classifiable failures carry
// their error type as a Struct status detail, see WithType and TypeOf.
package rpc
