package validator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"

	"github.com/rubiconsolutions/guardion/pkg/async"
	"github.com/rubiconsolutions/guardion/pkg/logger"
	"github.com/rubiconsolutions/guardion/pkg/mxresolver"
)

// syntax holds the address and URL grammars. Instances are safe for concurrent use.
var syntax = playground.New()

func (e *Engine) checkEmail(ctx context.Context, r Rule, value string, opts RunOptions) (bool, *Warning, error) {
	domain, ok := emailDomain(value)
	if !ok {
		return true, nil, nil
	}
	if !r.checkMX || !opts.MXEnabled {
		return false, nil, nil
	}

	ascii, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return true, nil, nil
	}

	hosts, err := e.lookupMX(ctx, ascii, opts.MXTimeout)
	switch {
	case err == nil:
		return len(hosts) == 0, nil, nil
	case ctx.Err() != nil:
		return false, nil, ctx.Err()
	case errors.Is(err, mxresolver.ErrNotFound):
		return true, nil, nil
	}

	w := &Warning{
		Field:  r.field,
		Rule:   r.kind,
		Domain: ascii,
		Reason: ReasonTransient,
		Err:    err,
	}
	if errors.Is(err, mxresolver.ErrTimeout) {
		w.Reason = ReasonTimeout
	}
	e.logger.WarnContext(ctx, "mx check degraded",
		logger.Field(r.field),
		logger.Domain(ascii),
		slog.String("reason", w.Reason.String()),
		logger.Error(err),
	)
	return false, w, nil
}

// lookupMX bounds the resolver call by timeout even when the resolver
// ignores its context.
func (e *Engine) lookupMX(ctx context.Context, domain string, timeout time.Duration) ([]string, error) {
	var (
		lookupCtx context.Context
		cancel    context.CancelFunc
	)
	if timeout > 0 {
		lookupCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		lookupCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	future := async.Go(lookupCtx, func(ctx context.Context) ([]string, error) {
		return e.resolver.LookupMX(ctx, domain, timeout)
	})
	hosts, err := future.AwaitContext(lookupCtx)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, mxresolver.ErrTimeout) {
		return nil, errors.Join(mxresolver.ErrTimeout, err)
	}
	return hosts, err
}

// emailDomain returns the domain part of a syntactically valid address.
func emailDomain(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	if err := syntax.Var(value, "email"); err != nil {
		return "", false
	}
	at := strings.LastIndexByte(value, '@')
	if at <= 0 || at == len(value)-1 {
		return "", false
	}
	return value[at+1:], true
}
