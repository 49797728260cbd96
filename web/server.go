// Package web serves the upload form, runs fills and hands out the results.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aerissecure/docfill"
	"github.com/aerissecure/docfill/config"
	"github.com/aerissecure/docfill/output"
	"github.com/aerissecure/docfill/xlsx"
)

// MissingInputMessage is shown when the form lacks a file or a field.
const MissingInputMessage = "Please upload both Excel and Word files, and provide necessary details."

// multipart parts beyond this stay on disk while parsing.
const maxMemory = 8 << 20

// Server holds the handlers. Each request runs its own fill; nothing but the
// read-only config is shared.
type Server struct {
	cfg    *config.Config
	filler *docfill.Filler
	files  *output.LocalDir
	mux    *http.ServeMux
}

// New returns a Server that runs fills with filler and serves downloads from
// files.
func New(cfg *config.Config, filler *docfill.Filler, files *output.LocalDir) *Server {
	s := &Server{cfg: cfg, filler: filler, files: files, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /run", s.handleRun)
	s.mux.HandleFunc("GET /download/{name}", s.handleDownload)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("Shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{Sheet: s.cfg.Sheet, Column: s.cfg.Column})
}

// -----------------------------------------------------------------------------
// Run
// -----------------------------------------------------------------------------

// runForm is the parsed upload. Field names in validation errors come from
// the form tag.
type runForm struct {
	Spreadsheet *multipart.FileHeader `form:"spreadsheet" validate:"required"`
	Template    *multipart.FileHeader `form:"template" validate:"required"`
	Sheet       string                `form:"sheet" validate:"required"`
	Column      string                `form:"column" validate:"required"`
}

var formValidate = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// validate returns a MissingInputError naming every empty field.
func (f *runForm) validate() error {
	err := formValidate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := &docfill.MissingInputError{}
	for _, fe := range verrs {
		missing.Fields = append(missing.Fields, fe.Field())
	}
	return missing
}

func parseRunForm(r *http.Request) (*runForm, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	// Sheet names may carry leading or trailing spaces, so the sheet is
	// passed through as typed; blank ones are caught by the run itself.
	f := &runForm{
		Sheet:  r.FormValue("sheet"),
		Column: strings.TrimSpace(r.FormValue("column")),
	}
	if r.MultipartForm != nil {
		f.Spreadsheet = firstFile(r.MultipartForm, "spreadsheet")
		f.Template = firstFile(r.MultipartForm, "template")
	}
	return f, nil
}

// firstFile returns the first non-empty upload for key. Browsers send an
// empty part when no file was chosen.
func firstFile(form *multipart.Form, key string) *multipart.FileHeader {
	for _, fh := range form.File[key] {
		if fh.Size > 0 {
			return fh
		}
	}
	return nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())

	data := pageData{Sheet: s.cfg.Sheet, Column: s.cfg.Column}

	form, err := parseRunForm(r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			data.Error = fmt.Sprintf("Upload exceeds the %d MB limit.", s.cfg.MaxUploadMB)
			s.render(w, http.StatusRequestEntityTooLarge, data)
			return
		}
		data.Error = "Error: " + err.Error()
		s.render(w, http.StatusBadRequest, data)
		return
	}
	if strings.TrimSpace(form.Sheet) != "" {
		data.Sheet = form.Sheet
	}
	if form.Column != "" {
		data.Column = form.Column
	}

	if err := form.validate(); err != nil {
		slog.Warn("Rejected run", "error", err)
		s.renderError(w, data, err)
		return
	}

	req := docfill.Request{
		SpreadsheetName: form.Spreadsheet.Filename,
		TemplateName:    form.Template.Filename,
		Sheet:           form.Sheet,
		Column:          form.Column,
	}
	if req.Spreadsheet, err = readFile(form.Spreadsheet); err != nil {
		s.renderError(w, data, &docfill.DataSourceError{Sheet: req.Sheet, Column: req.Column, Err: err})
		return
	}
	if req.Template, err = readFile(form.Template); err != nil {
		s.renderError(w, data, &docfill.TemplateLoadError{Name: req.TemplateName, Err: err})
		return
	}

	res, err := s.filler.Run(r.Context(), req)
	if err != nil {
		slog.Error("Run failed", "request", req.String(), "error", err)
		s.renderError(w, data, err)
		return
	}

	_, letter, _ := xlsx.ColumnIndex(req.Column)
	col := xlsx.Column{Sheet: req.Sheet, Letter: letter, Values: res.Values}
	data.Result = &resultView{
		OutputName:  res.OutputName,
		DownloadURL: "/download/" + url.PathEscape(res.OutputName),
		Elapsed:     fmt.Sprintf("%.2f seconds", res.Elapsed.Seconds()),
		Tokens:      res.Tokens,
		Paragraphs:  res.Paragraphs,
		Column:      template.HTML(xlsx.RenderColumnHTML(col)),
		Preview:     template.HTML(res.Preview),
	}
	s.render(w, http.StatusOK, data)
}

// renderError maps err to a status and message.
func (s *Server) renderError(w http.ResponseWriter, data pageData, err error) {
	var (
		missing *docfill.MissingInputError
		dse     *docfill.DataSourceError
		tle     *docfill.TemplateLoadError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &missing):
		data.Error = MissingInputMessage
		s.render(w, http.StatusBadRequest, data)
		return
	case errors.As(err, &dse), errors.As(err, &tle):
		status = http.StatusUnprocessableEntity
	}
	data.Error = "Error: " + err.Error()
	s.render(w, status, data)
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("Render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// -----------------------------------------------------------------------------
// Download
// -----------------------------------------------------------------------------

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	f, info, err := s.files.Open(name)
	switch {
	case errors.Is(err, output.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, os.ErrNotExist):
		http.NotFound(w, r)
		return
	case err != nil:
		slog.Error("Open download", "file", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	w.Header().Set("Content-Type", output.ContentType(name))
	http.ServeContent(w, r, name, info.ModTime(), f)
}
