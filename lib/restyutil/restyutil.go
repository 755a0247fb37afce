// Package restyutil instruments resty clients with otel spans and an
// optional transcript dump used to diagnose source-format changes.
package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.13.0/httpconv"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentOutput receives one rendered HTTP transcript per request.
type InstrumentOutput interface {
	Write(id string, contents string)
}

// FilesystemOutput writes transcripts into a directory, one file per
// request, wiping whatever a previous run left there.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	os.RemoveAll(dir)
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http transcript", "id", id, "err", err)
	}
}

// InstrumentClient attaches span middleware to client. output may be
// nil, in which case transcripts are not recorded.
func InstrumentClient(client *resty.Client, tracer trace.Tracer, output InstrumentOutput) {
	if tracer == nil {
		tracer = otel.Tracer("resty")
	}
	i := &instrument{tracer: tracer, output: output}
	client.OnBeforeRequest(i.onBeforeRequest)
	client.OnAfterResponse(i.onAfterResponse)
	client.OnError(i.onError)
}

type instrument struct {
	tracer  trace.Tracer
	output  InstrumentOutput
	counter atomic.Uint64
}

func (i *instrument) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	ctx, _ := i.tracer.Start(req.Context(), req.Method)
	req.SetContext(ctx)
	return nil
}

func (i *instrument) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	span := trace.SpanFromContext(res.Request.Context())
	defer span.End()

	// res.Request.RawRequest is nil until the request has been sent,
	// so request attributes are recorded here rather than in the
	// before-request hook
	span.SetName(fmt.Sprintf("http %s", res.Request.Method))
	span.SetAttributes(httpconv.ClientRequest(res.Request.RawRequest)...)
	span.SetAttributes(httpconv.ClientResponse(res.RawResponse)...)

	if i.output != nil {
		id := strconv.FormatUint(i.counter.Add(1), 10)
		i.output.Write(id, formatTranscript(res))
		slog.Debug(
			"recorded http transcript",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"id", id,
		)
	}

	return nil
}

func (i *instrument) onError(req *resty.Request, err error) {
	span := trace.SpanFromContext(req.Context())
	defer span.End()

	span.SetName(fmt.Sprintf("http %s", req.Method))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if req.RawRequest != nil {
		span.SetAttributes(httpconv.ClientRequest(req.RawRequest)...)
	}
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for key, values := range headers {
		for _, v := range values {
			fmt.Fprintf(&out, "%s: %s\n", key, v)
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

// 1: request method
// 2: request url
// 3: request headers
// 4: response status
// 5: response headers
// 6: response body
const transcriptTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%s

%s

%s`

func formatTranscript(res *resty.Response) string {
	return fmt.Sprintf(
		transcriptTemplate,

		res.Request.Method, res.Request.URL,
		formatHeaders(res.Request.RawRequest.Header),

		res.Status(),
		formatHeaders(res.Header()),
		res.String(),
	)
}
