package restyutil

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

type stepKey struct{}
type messageIdKey struct{}

// WithStep labels the requests made with ctx, the label ends up in the name
// of the dumped message.
func WithStep(ctx context.Context, step string) context.Context {
	return context.WithValue(ctx, stepKey{}, step)
}

func stepFrom(ctx context.Context) string {
	step, ok := ctx.Value(stepKey{}).(string)
	if !ok || step == "" {
		return "request"
	}
	return step
}

type dumper struct {
	output  InstrumentOutput
	counter *atomic.Uint64
}

// InstrumentClient dumps every request/response pair of `client` to
// `output` when debug logging is enabled. Messages are numbered in the order
// the requests were made. A nil output disables dumping.
func InstrumentClient(client *resty.Client, output InstrumentOutput) {
	if output == nil {
		return
	}

	d := dumper{output: output, counter: &atomic.Uint64{}}
	client.OnBeforeRequest(d.onBeforeRequest)
	client.OnAfterResponse(d.onAfterResponse)
	client.OnError(d.onError)
}

func (d dumper) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx := req.Context()
	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return nil
	}

	step := stepFrom(ctx)
	messageId := fmt.Sprintf("%03d-%s", d.counter.Add(1), step)
	slog.DebugContext(
		ctx, "http request",
		"step", step,
		"method", req.Method,
		"url", req.URL,
		"message_id", messageId,
	)
	req.SetContext(context.WithValue(ctx, messageIdKey{}, messageId))
	return nil
}

func (d dumper) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	ctx := res.Request.Context()
	messageId, ok := ctx.Value(messageIdKey{}).(string)
	if !ok {
		return nil
	}

	d.output.Write(messageId, formatHttpMessage(res))
	slog.DebugContext(
		ctx, "http response",
		"status", res.StatusCode(),
		"duration", res.Time(),
		"message_id", messageId,
	)
	return nil
}

func (d dumper) onError(req *resty.Request, err error) {
	ctx := req.Context()
	messageId, ok := ctx.Value(messageIdKey{}).(string)
	if ok {
		d.output.Write(messageId, formatFailedRequest(req, err))
	}
	slog.DebugContext(
		ctx, "http request failed",
		"method", req.Method,
		"url", req.URL,
		"err", err,
		"message_id", messageId,
	)
}
