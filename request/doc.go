// Package request provides the immutable GraphQL request descriptor and its
// fluent builder.
//
// Validation is deferred to the read boundary: a Descriptor without a query
// can be built (useful when cloning a base request and overriding pieces), but
// Query and Validate fail on it, and a handler never dispatches it.
//
//	base := request.NewBuilder().
//	    WithQueryString(`query Country($code: ID!) { country(code: $code) { name } }`).
//	    WithRetries(2).
//	    Build()
//
//	de := base.CloneBuilder().WithVariables(map[string]any{"code": "DE"}).Build()
package request
