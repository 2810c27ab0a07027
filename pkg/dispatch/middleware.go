package dispatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/capkit/capkit/pkg/errors"
	"github.com/capkit/capkit/pkg/logging"
	"github.com/capkit/capkit/pkg/observability"
)

// LoggingMiddleware logs every dispatch with its capability name, outcome,
// and duration. The invocation id is picked up from the context.
func LoggingMiddleware(logger logging.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) *Result {
			callLogger := logger.WithContext(ctx).WithFields(
				logging.String("capability", call.Name),
			)
			callLogger.Debug("dispatch started")

			start := time.Now()
			result := next(ctx, call)
			duration := time.Since(start)

			if result.OK {
				callLogger.Info("dispatch completed",
					logging.Duration("duration", duration))
			} else {
				callLogger.Warn("dispatch failed",
					logging.String("error_kind", string(result.ErrorKind)),
					logging.Int("error_code", result.Code),
					logging.Duration("duration", duration))
			}

			return result
		}
	}
}

// MetricsMiddleware records dispatch counts, latency, validation failures,
// and in-flight dispatches on the given provider
func MetricsMiddleware(provider observability.MetricsProvider) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) *Result {
			provider.DispatchStarted(ctx)
			defer provider.DispatchFinished(ctx)

			start := time.Now()
			result := next(ctx, call)
			duration := time.Since(start)

			status := "success"
			if !result.OK {
				status = string(result.ErrorKind)
				if isValidationKind(result.ErrorKind) {
					provider.RecordValidationFailure(ctx, call.Name, string(result.ErrorKind))
				}
			}
			provider.RecordDispatch(ctx, call.Name, status, duration)

			return result
		}
	}
}

// TracingMiddleware opens a span per dispatch, recording the capability name,
// outcome, and failure kind
func TracingMiddleware(provider *observability.TracingProvider) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) *Result {
			ctx, span := provider.StartDispatchSpan(ctx, call.Name)
			defer span.End()

			result := next(ctx, call)

			span.SetAttributes(attribute.Bool("capability.dispatch.ok", result.OK))
			if !result.OK {
				category := errors.CategoryForKind(result.ErrorKind)
				span.SetAttributes(
					attribute.String("capability.dispatch.error_kind", string(result.ErrorKind)),
					attribute.String("capability.dispatch.error_category", string(category)),
				)
				provider.RecordError(ctx, errors.New(result.ErrorKind, result.Code, result.Message,
					category, errors.SeverityError))
			}

			return result
		}
	}
}

func isValidationKind(kind errors.Kind) bool {
	switch kind {
	case errors.KindMissingArgument, errors.KindUnknownArgument, errors.KindTypeMismatch:
		return true
	default:
		return false
	}
}
