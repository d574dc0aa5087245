package rest

import (
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/chaptersafe/chaptersafe/pkg/plaintext"
	"github.com/chaptersafe/chaptersafe/pkg/rest/model"
	"github.com/chaptersafe/chaptersafe/pkg/sanitize"
	"github.com/chaptersafe/chaptersafe/pkg/server/web"
	"github.com/chaptersafe/chaptersafe/pkg/stringutil"
	"github.com/rs/zerolog/log"
)

// auditSampleLen bounds how much of the offending input is copied into the audit log.
const auditSampleLen = 120

// SanitizeV1 sanitizes chapter HTML. A text/html request body is answered with the bare
// sanitized HTML, anything else is treated as a JSON request.
func SanitizeV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if ctx.ContentType == "text/html" {
		body, err := web.ReadBody(w, req, ctx)
		if err != nil {
			return err
		}
		output, report := runSanitizer(req, ctx, string(body))
		if report.Failed {
			return errors.New("sanitizer failed to process input")
		}
		w.Header().Set("X-Sanitize-Removed", strconv.Itoa(report.Removed()))
		return web.RenderHTML(w, output)
	}

	var in model.JSONSanitizeRequestV1
	if err := web.DecodeJSON(w, req, ctx, &in); err != nil {
		return err
	}
	output, report := runSanitizer(req, ctx, deref(in.HTML))
	return web.RenderJSON(w, &model.JSONSanitizeResponseV1{
		HTML:   output,
		Report: jsonReport(report),
	})
}

// SpeechV1 renders chapter HTML as narration text, split into chunks for a TTS engine.
func SpeechV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	var in model.JSONSpeechRequestV1
	if err := web.DecodeJSON(w, req, ctx, &in); err != nil {
		return err
	}
	if in.ChunkSize < 0 {
		return &web.RequestError{Status: http.StatusBadRequest, Err: errors.New("chunkSize must not be negative")}
	}
	size := in.ChunkSize
	if size == 0 {
		size = ctx.RootConfig.Text.ChunkSize
	}
	expSpeechTotal.Add(1)

	text := plaintext.Speech(deref(in.HTML))
	chunks := plaintext.Chunks(text, size)
	if chunks == nil {
		chunks = []string{}
	}
	return web.RenderJSON(w, &model.JSONSpeechResponseV1{Text: text, Chunks: chunks})
}

// ExcerptV1 renders chapter HTML as a plain text excerpt for prompt context.
func ExcerptV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	var in model.JSONExcerptRequestV1
	if err := web.DecodeJSON(w, req, ctx, &in); err != nil {
		return err
	}
	if in.Limit < 0 {
		return &web.RequestError{Status: http.StatusBadRequest, Err: errors.New("limit must not be negative")}
	}
	limit := in.Limit
	if limit == 0 {
		limit = ctx.RootConfig.Text.ExcerptLimit
	}
	if limit <= 0 {
		limit = plaintext.DefaultExcerptLimit
	}
	expExcerptTotal.Add(1)

	text := plaintext.Excerpt(deref(in.HTML), limit)
	return web.RenderJSON(w, &model.JSONExcerptResponseV1{
		Text:      text,
		Truncated: utf8.RuneCountInString(text) > limit,
	})
}

// ProvidersV1 lists the embed providers allowed through the sanitizer.
func ProvidersV1(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	providers := sanitize.Providers()
	jproviders := make([]*model.JSONProviderV1, len(providers))
	for i, p := range providers {
		jproviders[i] = &model.JSONProviderV1{
			Name:            p.Name,
			Prefix:          p.Prefix,
			Allow:           p.Allow,
			ReferrerPolicy:  p.ReferrerPolicy,
			Sandbox:         p.Sandbox,
			AllowFullscreen: p.AllowFullscreen,
		}
	}
	return web.RenderJSON(w, jproviders)
}

// runSanitizer sanitizes input, recording metrics and the audit trail.
func runSanitizer(req *http.Request, ctx *web.Context, input string) (string, sanitize.Report) {
	output, report := sanitize.HTMLWithReport(input)
	countReport(report)
	switch {
	case report.Failed:
		log.Error().Str("module", "rest").Str("remote", req.RemoteAddr).Int("size", len(input)).
			Msg("Sanitizer failed, returned empty output")
	case !report.Clean() && ctx.RootConfig.Web.AuditLog:
		log.Warn().Str("module", "rest").Str("remote", req.RemoteAddr).Int("size", len(input)).
			Int("scripts", report.Scripts).Int("schemes", report.Schemes).
			Int("handlers", report.Handlers).Int("styles", report.Styles).
			Int("embedsDropped", report.EmbedsDropped).
			Int("containersDropped", report.ContainersDropped).
			Int("stripped", report.Stripped).Int("comments", report.Comments).
			Str("sample", stringutil.Truncate(input, auditSampleLen)).
			Msg("Sanitizer removed content")
	default:
		log.Debug().Str("module", "rest").Int("size", len(input)).Int("embeds", report.EmbedsKept).
			Msg("Sanitized")
	}
	return output, report
}

func jsonReport(r sanitize.Report) *model.JSONReportV1 {
	return &model.JSONReportV1{
		Scripts:           r.Scripts,
		Schemes:           r.Schemes,
		Handlers:          r.Handlers,
		Styles:            r.Styles,
		EmbedsKept:        r.EmbedsKept,
		EmbedsDropped:     r.EmbedsDropped,
		ContainersDropped: r.ContainersDropped,
		Stripped:          r.Stripped,
		Comments:          r.Comments,
		Removed:           r.Removed(),
		Clean:             r.Clean(),
		Failed:            r.Failed,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
