package api

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/ah-its-andy/reformed/internal/bundle"
	"github.com/ah-its-andy/reformed/internal/converter"
	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/ah-its-andy/reformed/internal/inflight"
	"github.com/ah-its-andy/reformed/internal/logging"
	"github.com/ah-its-andy/reformed/internal/options"
	"github.com/ah-its-andy/reformed/internal/utils"
	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// conversionRun accumulates the history record for one request.
type conversionRun struct {
	rec   db.ConversionRecord
	start time.Time
}

func (r *conversionRun) fail(err error) {
	r.rec.Status = db.StatusFailed
	r.rec.Error = err.Error()
}

// convert handles POST /from/:from/to/:to. Validation happens before any
// slot or workspace is taken; once the workspace exists it is removed on
// every exit path.
func (s *Server) convert(c *gin.Context) {
	from, to := c.Param("from"), c.Param("to")
	id := uuid.NewString()
	log := s.logger.With(
		zap.String("request_id", logging.RequestID(c)),
		zap.String("conversion_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)

	if !s.formats.IsValidInput(from) {
		s.fail(c, nil, fmt.Errorf("%w: %s", ErrInvalidInputFormat, from))
		return
	}
	target, ok := s.formats.Output(to)
	if !ok {
		s.fail(c, nil, fmt.Errorf("%w: %s", ErrInvalidOutputFormat, to))
		return
	}

	if s.maxBufferSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBufferSize)
	}
	form, err := c.MultipartForm()
	if err != nil {
		s.fail(c, nil, s.bodyError(err))
		return
	}
	defer func() { _ = form.RemoveAll() }()

	files := form.File[DocumentField]
	if len(files) != 1 {
		s.fail(c, nil, fmt.Errorf("%w (got %d)", ErrFileCount, len(files)))
		return
	}
	doc := files[0]

	s.tracker.Start(id, from, to)
	defer s.tracker.End(id)
	s.tracker.SetFileName(id, doc.Filename)

	run := &conversionRun{
		rec:   db.ConversionRecord{ID: id, From: from, To: to, FileName: doc.Filename},
		start: time.Now(),
	}
	defer s.record(c.Request.Context(), log, run)

	s.tracker.Advance(id, inflight.StageQueued)
	release, err := s.pool.Acquire(c.Request.Context())
	if err != nil {
		s.fail(c, run, fmt.Errorf("%w: %v", ErrBusy, err))
		return
	}
	defer release()

	ws, err := converter.NewWorkspace(s.workspaceRoot)
	if err != nil {
		s.fail(c, run, err)
		return
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn("workspace teardown failed", zap.String("workspace", ws.Dir), zap.Error(err))
		}
	}()
	s.tracker.Advance(id, inflight.StagePrepared)

	if err := s.storeUpload(ws, doc, run, log); err != nil {
		s.fail(c, run, err)
		return
	}

	flags := options.Translate(form.Value)
	bundleRequested := options.BundleRequested(form.Value)
	log.Info("conversion started",
		zap.String("file", doc.Filename),
		zap.String("size", humanize.IBytes(uint64(run.rec.InputBytes))),
		zap.String("detected_mime", run.rec.DetectedMIME),
		zap.Strings("flags", flags),
		zap.Bool("bundle", bundleRequested),
	)

	s.tracker.Advance(id, inflight.StageConverting)
	outcome, err := s.exec.Execute(c.Request.Context(), ws, from, to, flags)
	run.rec.ExitCode = outcome.ExitCode
	if err != nil {
		s.fail(c, run, err)
		return
	}
	if err := outcome.Err(s.exec.Tool()); err != nil {
		s.fail(c, run, err)
		return
	}

	s.tracker.Advance(id, inflight.StagePackaging)
	out, err := bundle.Package(ws, target, doc.Filename, bundleRequested)
	if err != nil {
		s.fail(c, run, err)
		return
	}
	run.rec.Bundled = out.Bundled
	run.rec.MediaCount = out.MediaCount
	run.rec.OutputBytes = out.Size

	s.tracker.Advance(id, inflight.StageStreaming)
	written, err := Stream(c.Writer, out)
	if err != nil {
		if !c.Writer.Written() {
			for _, k := range []string{"Content-Disposition", "Content-Length"} {
				c.Writer.Header().Del(k)
			}
			s.fail(c, run, err)
			return
		}
		run.fail(err)
		log.Warn("response stream interrupted", zap.Int64("written", written), zap.Error(err))
		return
	}

	run.rec.Status = db.StatusSuccess
	log.Info("conversion finished",
		zap.String("file_name", out.FileName),
		zap.String("content_type", out.ContentType),
		zap.String("size", humanize.IBytes(uint64(out.Size))),
		zap.Int("media", out.MediaCount),
		zap.Duration("converter", outcome.Duration),
	)
}

func (s *Server) storeUpload(ws *converter.Workspace, doc *multipart.FileHeader, run *conversionRun, log *zap.Logger) error {
	src, err := doc.Open()
	if err != nil {
		return fmt.Errorf("%w: open upload: %v", ErrBadRequest, err)
	}
	n, err := ws.WriteInput(src)
	_ = src.Close()
	if err != nil {
		return err
	}
	run.rec.InputBytes = n

	if mime, err := utils.DetectMIME(ws.InputPath()); err == nil {
		run.rec.DetectedMIME = mime
	} else {
		log.Debug("mime detection failed", zap.Error(err))
	}
	if sum, err := utils.MD5File(ws.InputPath(), 0); err == nil {
		run.rec.UploadMD5 = sum
	} else {
		log.Debug("upload checksum failed", zap.Error(err))
	}
	return nil
}

func (s *Server) bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: the limit is %s", ErrTooLarge, humanize.IBytes(uint64(s.maxBufferSize)))
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return fmt.Errorf("%w: expected a multipart/form-data body", ErrBadRequest)
	}
	return fmt.Errorf("%w: %v", ErrBadRequest, err)
}

// record finalizes run and stores it when history is enabled. The insert
// ignores request cancellation.
func (s *Server) record(ctx context.Context, log *zap.Logger, run *conversionRun) {
	run.rec.DurationMs = time.Since(run.start).Milliseconds()
	if run.rec.Status == "" {
		run.rec.Status = db.StatusFailed
	}
	if s.history == nil {
		return
	}
	if err := s.history.Insert(context.WithoutCancel(ctx), &run.rec); err != nil {
		log.Warn("failed to record conversion", zap.Error(err))
	}
}
