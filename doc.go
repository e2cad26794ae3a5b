// Package guardion is a declarative field validation engine.
//
// Rules are bound to record fields, evaluated in a fixed order and reported
// as violations ranked by severity. Email rules can verify that the address
// domain has a mail exchanger; lookups are time-bounded and DNS failures
// degrade to a flagged pass instead of a false rejection.
//
// Packages:
//
//   - pkg/validator: rules, schemas, the engine and results
//   - pkg/schema: YAML schema files
//   - pkg/mxresolver: MX resolvers (system, miekg/dns, static), caching and throttling
//   - pkg/ratelimiter: token bucket used to cap DNS query rates
//   - pkg/cache: generic LRU with per-entry TTL
//   - pkg/redis: go-redis connection helper for the shared MX cache
//   - pkg/async: futures and bounded fan-out
//   - pkg/config: environment and .env loading
//   - pkg/logger: slog construction and attribute helpers
//
// Basic usage:
//
//	schema, err := validator.NewSchemaBuilder().
//		Field("username").Required().LengthInterval(3, 20).
//		Field("email").EmailWithMX(true).
//		Build()
//	if err != nil {
//		return err
//	}
//
//	resolver, err := mxresolver.New(ctx, mxCfg)
//	if err != nil {
//		return err
//	}
//
//	engine := validator.New(validator.WithResolver(resolver), validator.WithLogger(log))
//	result, err := engine.Validate(ctx, schema, validator.Map{
//		"username": "ada",
//		"email":    "ada@example.com",
//	})
package guardion
