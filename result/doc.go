// Package result normalizes raw GraphQL responses into a uniform envelope.
//
// A client yields Raw values; FromRaw turns each into a Result whose Errors
// field is a try.Try: a success holding the reported error list, or an
// UNWRAP_FAILED failure when the response carried no error list at all.
package result
