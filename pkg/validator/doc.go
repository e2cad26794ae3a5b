// Package validator evaluates declarative field rules against a record and
// reports violations ranked by severity.
//
// A Schema binds field names to ordered rules. Rules come from a closed set of
// constructors (Required, NotEmpty, ExactLength, MinimumLength, MaximumLength,
// LengthInterval, MatchesPattern, EmailWithMX and URLWithScheme); each one
// checks its parameters up front and returns a *ConfigError when they are
// inconsistent, so a schema that builds cannot fail on parameters at run time.
//
// # Usage
//
//	schema, err := validator.NewSchemaBuilder().
//		Field("username").Required().LengthInterval(3, 20).
//		Field("email").EmailWithMX(true).
//		Field("website").URLWithScheme(true, validator.WithSeverity(validator.SeverityWarning)).
//		Build()
//	if err != nil {
//		return err
//	}
//
//	engine := validator.New(validator.WithResolver(resolver))
//	result, err := engine.Validate(ctx, schema, validator.Map{
//		"username": "jo",
//		"email":    "jo@example.com",
//		"website":  "ftp://example.com",
//	})
//	if err != nil {
//		return err // configuration mistake or cancelled context
//	}
//	if !result.IsValid() {
//		return result.Err()
//	}
//
// # Results
//
// Violations never surface as the error return of Validate. They are
// collected into a Result in schema order, then rule order. IsValid compares
// them against the failure threshold (SeverityError by default); violations
// below the threshold are reported but do not invalidate the result.
//
// # MX lookups
//
// EmailWithMX rules with MX checking enabled resolve the address domain
// through an mxresolver.Resolver. A domain without mail exchangers is a
// violation. Timeouts and transient resolver failures are not: the check
// passes and a Warning is attached to the Result so callers can tell a
// degraded pass from a verified one.
package validator
