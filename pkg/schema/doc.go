// Package schema loads validator schemas from YAML.
//
//	defaults:
//	  threshold: error
//	  mx_timeout: 2s
//	fields:
//	  - name: username
//	    rules:
//	      - kind: required
//	      - kind: length_interval
//	        min: 3
//	        max: 20
//	  - name: email
//	    rules:
//	      - kind: email_mx
//	        check_mx: true
//	        severity: critical
//
// Rules are built with the validator constructors, so a file is rejected for
// exactly the reasons the equivalent Go code would be. The url kind requires
// an http or https scheme unless require_http is set to false.
package schema
