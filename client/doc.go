// Package client builds GraphQL clients from a transport and a registry of
// named middlewares.
//
// Each request picks its middlewares with the descriptor's inclusive and
// exclusive filters, so one client can serve requests that want different
// stacks:
//
//	reg := client.NewRegistry[Country]()
//	_ = reg.Register(client.MiddlewareLogging, provider.WithLogging[*request.Descriptor, result.Raw[Country]](log))
//	_ = reg.Register(client.MiddlewareRetry, client.WithRetryBudget[Country](resilience.DefaultRetryConfig()))
//	c := client.New("countries", transport, reg)
//
//	// Skip retries for this request only.
//	d := request.NewBuilder().
//	    WithQueryString(q).
//	    WithExclusiveFilters(filter.Named("resilience:retry")).
//	    Build()
//
// NewFromConfig assembles the standard stack from a config.Client section.
package client
