// Package handler chains a previous fallible value through a request
// generator, dispatches the request through a Client and streams every
// processed result back as a try.Try value.
//
//	h := handler.NewBuilder[CountryData]().WithClient(countries).Build()
//
//	stream, err := handler.Request(ctx, h, try.Success("DE"),
//	    func(_ context.Context, code string) (*request.Descriptor, error) {
//	        return request.NewBuilder().
//	            WithQueryString(countryQuery).
//	            WithVariables(map[string]any{"code": code}).
//	            Build(), nil
//	    },
//	    func(_ context.Context, r result.Result[CountryData]) (string, error) {
//	        return r.Data.Country.Name, nil
//	    },
//	)
//	if err != nil {
//	    return err // no client configured
//	}
//	defer stream.Close()
//	for v := range stream.Chan(ctx) {
//	    name, err := v.Get()
//	    ...
//	}
//
// Only a missing client is returned as an error. Every other failure is a
// value on the stream, so one bad request never tears down a long-lived handler.
package handler
