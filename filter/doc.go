// Package filter defines the middleware filter contract carried by request
// descriptors.
//
// A descriptor stores inclusive and exclusive filter sequences without ever
// inspecting them. Clients that compose named middleware call Select to decide
// which middleware run for a given request:
//
//	names := filter.Select(registry.Names(), d.InclusiveFilters(), d.ExclusiveFilters())
//
// Middleware names may use a "group:name" form (for example "observability:tracing")
// so patterns such as "observability:*" select a whole group.
package filter
