package telemetry

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentResty creates a span per request and counts requests by method
// and status code.
func InstrumentResty(client *resty.Client, tracerName string) {
	tracer := otel.Tracer(tracerName)
	counter, err := otel.Meter(tracerName).Int64Counter(
		"frs.http.requests",
		otelmetric.WithDescription("HTTP requests made to the portal."),
	)
	if err != nil {
		otel.Handle(err)
	}

	client.OnBeforeRequest(onBeforeRequest(tracer))
	client.OnAfterResponse(onAfterResponse(counter))
	client.OnError(onError(counter))
}

func onBeforeRequest(tracer trace.Tracer) resty.RequestMiddleware {
	return func(cli *resty.Client, req *resty.Request) error {
		ctx, _ := tracer.Start(req.Context(), req.Method)
		req.SetContext(ctx)
		return nil
	}
}

func headerAttributes(prefix string, headers http.Header) []attribute.KeyValue {
	var out []attribute.KeyValue
	for header, values := range headers {
		if len(values) == 1 {
			out = append(out, attribute.String(
				fmt.Sprintf("%s/header: %s", prefix, header),
				RedactHeader(header, values[0]),
			))
			continue
		}
		for i, v := range values {
			out = append(out, attribute.String(
				fmt.Sprintf("%s/header: %s (%d)", prefix, header, i),
				RedactHeader(header, v),
			))
		}
	}
	return out
}

func requestBodyAttribute(req *http.Request) attribute.KeyValue {
	if req.GetBody == nil {
		return attribute.String("request/body", "")
	}
	reader, err := req.GetBody()
	if err != nil {
		return attribute.String("request/body", fmt.Sprintf("failed to get request body: %s", err.Error()))
	}
	if reader == nil {
		return attribute.String("request/body", "")
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return attribute.String("request/body", fmt.Sprintf("failed to read request body: %s", err.Error()))
	}
	return attribute.String("request/body", RedactForm(string(body)))
}

func count(counter otelmetric.Int64Counter, ctx context.Context, method string, status int) {
	if counter == nil {
		return
	}
	counter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("method", method),
		attribute.Int("status", status),
	))
}

func onAfterResponse(counter otelmetric.Int64Counter) resty.ResponseMiddleware {
	return func(_ *resty.Client, res *resty.Response) error {
		ctx := res.Request.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		count(counter, ctx, res.Request.Method, res.StatusCode())

		span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

		// request attributes are set here since res.Request.RawRequest is nil in onBeforeRequest
		span.SetName(fmt.Sprintf("http %s", res.Request.Method))
		span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
		span.SetAttributes(headerAttributes("request", res.Request.Header)...)
		span.SetAttributes(headerAttributes("response", res.Header())...)
		span.SetAttributes(requestBodyAttribute(res.Request.RawRequest))

		if res.IsError() {
			span.SetStatus(codes.Error, res.Status())
		}
		return nil
	}
}

func onError(counter otelmetric.Int64Counter) resty.ErrorHook {
	return func(req *resty.Request, err error) {
		ctx := req.Context()
		span := trace.SpanFromContext(ctx)
		defer span.End()

		count(counter, ctx, req.Method, 0)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetName(fmt.Sprintf("http %s", req.Method))
		span.SetAttributes(headerAttributes("request", req.Header)...)

		if req.RawRequest == nil {
			return
		}
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}
