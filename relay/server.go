// Package relay exposes the placement engine over HTTP so that code running
// elsewhere, typically a notebook in a browser, can drive the presentation
// host on this machine. Responses carry permissive CORS headers; the server
// performs no authentication and should stay bound to the loopback interface.
package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/slidefig"
	"github.com/tsawler/slidefig/automation"
	"github.com/tsawler/slidefig/engine"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/preset"
	"github.com/tsawler/slidefig/raster"
)

// Server relays HTTP requests to a placement engine.
type Server struct {
	cfg Config
	app automation.Application
	eng *engine.Engine
	log *log.Logger
}

// NewServer creates a relay over the given automation backend. A nil logger
// defaults to stderr.
func NewServer(cfg Config, app automation.Application, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Server{
		cfg: cfg,
		app: app,
		eng: engine.New(app),
		log: logger,
	}
}

// ListenAndServe runs the relay on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Printf("[INFO] relay listening on http://%s", s.cfg.Addr())
	return http.ListenAndServe(s.cfg.Addr(), s.Handler())
}

// Handler returns the relay's route table wrapped with CORS headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleHome)

	mux.HandleFunc("/title_to_front", s.get(s.handleTitleToFront))
	mux.HandleFunc("/set_title", s.get(s.handleSetTitle))
	mux.HandleFunc("/set_subtitle", s.get(s.handleSetSubtitle))
	mux.HandleFunc("/add_slide", s.get(s.handleAddSlide))
	mux.HandleFunc("/goto_slide", s.get(s.handleGotoSlide))
	mux.HandleFunc("/get_shape_positions", s.get(s.handleShapePositions))
	mux.HandleFunc("/get_image_positions", s.get(s.handleImagePositions))
	mux.HandleFunc("/get_slide_dimensions", s.get(s.handleSlideDimensions))
	mux.HandleFunc("/get_notes", s.get(s.handleNotes))

	mux.HandleFunc("/upload_picture", s.post(s.handleUploadPicture))
	mux.HandleFunc("/add_figure", s.post(s.handleAddFigure))
	mux.HandleFunc("/replace_figure", s.post(s.handleReplaceFigure))

	return s.cors(mux)
}

// cors adds the CORS headers to every response and short-circuits preflight
// requests.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) get(h http.HandlerFunc) http.HandlerFunc {
	return s.method(http.MethodGet, h)
}

func (s *Server) post(h http.HandlerFunc) http.HandlerFunc {
	return s.method(http.MethodPost, h)
}

func (s *Server) method(m string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}

var homeTemplate = template.Must(template.New("home").Parse(
	`<html><body>slidefig connector ver. {{.Version}}<br>` +
		`See docs at <a href="{{.DocsURL}}">{{.DocsURL}}</a>` +
		`{{if .Problem}}<br><br><font color="#ff0033">NB! {{.Problem}}</font>{{end}}` +
		`</body></html>`))

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := struct {
		Version string
		DocsURL string
		Problem string
	}{
		Version: slidefig.Version,
		DocsURL: slidefig.DocsURL,
	}
	if a, ok := s.app.(automation.Availabler); ok {
		if err := a.Available(); err != nil {
			data.Problem = err.Error()
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	homeTemplate.Execute(w, data)
}

func (s *Server) handleTitleToFront(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "title_to_front", err)
		return
	}
	s.log.Printf("[INFO] title_to_front slide_no=%d", slideNo)
	if err := s.eng.TitleToFront(slideNo); err != nil {
		s.fail(w, "title_to_front", err)
		return
	}
	s.ok(w)
}

func (s *Server) handleSetTitle(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "set_title", err)
		return
	}
	title := r.URL.Query().Get("title")
	s.log.Printf("[INFO] set_title slide_no=%d", slideNo)
	warnings, err := s.eng.SetTitle(title, slideNo)
	if err != nil {
		s.fail(w, "set_title", err)
		return
	}
	s.warn("set_title", warnings)
	s.ok(w)
}

func (s *Server) handleSetSubtitle(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "set_subtitle", err)
		return
	}
	subtitle := r.URL.Query().Get("subtitle")
	s.log.Printf("[INFO] set_subtitle slide_no=%d", slideNo)
	warnings, err := s.eng.SetSubtitle(subtitle, slideNo)
	if err != nil {
		s.fail(w, "set_subtitle", err)
		return
	}
	s.warn("set_subtitle", warnings)
	s.ok(w)
}

func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "add_slide", err)
		return
	}
	layoutAs, err := queryInt(r, "layout_as")
	if err != nil {
		s.fail(w, "add_slide", err)
		return
	}
	makeActive, err := queryInt(r, "make_active")
	if err != nil {
		s.fail(w, "add_slide", err)
		return
	}
	s.log.Printf("[INFO] add_slide slide_no=%d layout_as=%d make_active=%d", slideNo, layoutAs, makeActive)
	n, err := s.eng.AddSlide(slideNo, layoutAs, makeActive != 0)
	if err != nil {
		s.fail(w, "add_slide", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, strconv.Itoa(n))
}

func (s *Server) handleGotoSlide(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "goto_slide", err)
		return
	}
	s.log.Printf("[INFO] goto_slide slide_no=%d", slideNo)
	if err := s.eng.GotoSlide(slideNo); err != nil {
		s.fail(w, "goto_slide", err)
		return
	}
	s.ok(w)
}

func (s *Server) handleShapePositions(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "get_shape_positions", err)
		return
	}
	positions, err := s.eng.ShapePositions(slideNo)
	if err != nil {
		s.fail(w, "get_shape_positions", err)
		return
	}
	s.json(w, positions)
}

func (s *Server) handleImagePositions(w http.ResponseWriter, r *http.Request) {
	slideNo, err := queryInt(r, "slide_no")
	if err != nil {
		s.fail(w, "get_image_positions", err)
		return
	}
	positions, err := s.eng.ImagePositions(slideNo)
	if err != nil {
		s.fail(w, "get_image_positions", err)
		return
	}
	// Bare 4-arrays on the wire.
	out := make([][4]float64, len(positions))
	for i, p := range positions {
		out[i] = [4]float64{p.X, p.Y, p.Width, p.Height}
	}
	s.json(w, out)
}

func (s *Server) handleSlideDimensions(w http.ResponseWriter, r *http.Request) {
	width, height, err := s.eng.SlideDimensions()
	if err != nil {
		s.fail(w, "get_slide_dimensions", err)
		return
	}
	s.json(w, [2]float64{width, height})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.eng.Notes()
	if err != nil {
		s.fail(w, "get_notes", err)
		return
	}
	s.json(w, notes)
}

func (s *Server) handleUploadPicture(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("picture")
	if err != nil {
		s.fail(w, "upload_picture", fmt.Errorf("no picture part in the POST: %w", err))
		return
	}
	defer file.Close()
	if header.Filename == "" {
		s.fail(w, "upload_picture", errors.New("no selected file in the POST"))
		return
	}

	sniff := make([]byte, 12)
	n, err := io.ReadFull(file, sniff)
	if err != nil && err != io.ErrUnexpectedEOF {
		s.fail(w, "upload_picture", err)
		return
	}
	format := raster.DetectHeader(sniff[:n])
	if format == raster.Unknown {
		s.fail(w, "upload_picture", errors.New("picture is not a recognized raster format"))
		return
	}

	name, err := raster.TempFileName(format.Extension())
	if err != nil {
		s.fail(w, "upload_picture", err)
		return
	}
	dst, err := os.Create(name)
	if err != nil {
		s.fail(w, "upload_picture", err)
		return
	}
	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(sniff[:n]), file)); err != nil {
		dst.Close()
		os.Remove(name)
		s.fail(w, "upload_picture", err)
		return
	}
	if err := dst.Close(); err != nil {
		os.Remove(name)
		s.fail(w, "upload_picture", err)
		return
	}

	s.log.Printf("[INFO] upload_picture %s (%s) -> %s", header.Filename, format, name)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, name)
}

// addFigureRequest is the add_figure JSON body. Booleans that default to
// true are pointers so that an absent field and an explicit false can be
// told apart.
type addFigureRequest struct {
	Filename           string          `json:"filename"`
	BBox               json.RawMessage `json:"bbox"`
	SlideNo            int             `json:"slide_no"`
	KeepAspect         *bool           `json:"keep_aspect"`
	Replace            bool            `json:"replace"`
	DeletePlaceholders *bool           `json:"delete_placeholders"`
	TargetZOrder       int             `json:"target_z_order"`
	W                  float64         `json:"w"`
	H                  float64         `json:"h"`
}

func (s *Server) handleAddFigure(w http.ResponseWriter, r *http.Request) {
	var req addFigureRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, "add_figure", err)
		return
	}
	if req.Filename == "" {
		s.fail(w, "add_figure", errors.New("filename is required"))
		return
	}
	intent, err := intentFromBBox(req.BBox)
	if err != nil {
		s.fail(w, "add_figure", err)
		return
	}

	opts := engine.DefaultAddOptions()
	opts.SlideNo = req.SlideNo
	opts.Replace = req.Replace
	opts.TargetZOrder = req.TargetZOrder
	opts.ImageWidth = req.W
	opts.ImageHeight = req.H
	if req.KeepAspect != nil {
		opts.KeepAspect = *req.KeepAspect
	}
	if req.DeletePlaceholders != nil {
		opts.DeletePlaceholders = *req.DeletePlaceholders
	}

	s.log.Printf("[INFO] add_figure %s slide_no=%d", req.Filename, req.SlideNo)
	warnings, err := s.eng.AddFigure(req.Filename, intent, opts)
	if err != nil {
		s.fail(w, "add_figure", err)
		return
	}
	s.warn("add_figure", warnings)
	s.ok(w)
}

// replaceFigureRequest is the replace_figure JSON body.
type replaceFigureRequest struct {
	Filename   string  `json:"filename"`
	PicNo      int     `json:"pic_no"`
	LeftNo     int     `json:"left_no"`
	TopNo      int     `json:"top_no"`
	ZOrderNo   int     `json:"zorder_no"`
	SlideNo    int     `json:"slide_no"`
	KeepAspect *bool   `json:"keep_aspect"`
	KeepZOrder *bool   `json:"keep_zorder"`
	W          float64 `json:"w"`
	H          float64 `json:"h"`
}

func (s *Server) handleReplaceFigure(w http.ResponseWriter, r *http.Request) {
	var req replaceFigureRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, "replace_figure", err)
		return
	}
	if req.Filename == "" {
		s.fail(w, "replace_figure", errors.New("filename is required"))
		return
	}

	opts := engine.DefaultReplaceOptions()
	opts.SlideNo = req.SlideNo
	opts.ImageWidth = req.W
	opts.ImageHeight = req.H
	if req.KeepAspect != nil {
		opts.KeepAspect = *req.KeepAspect
	}
	if req.KeepZOrder != nil {
		opts.KeepZOrder = *req.KeepZOrder
	}
	sel := engine.Selector{
		PicNo:    req.PicNo,
		LeftNo:   req.LeftNo,
		TopNo:    req.TopNo,
		ZOrderNo: req.ZOrderNo,
	}

	s.log.Printf("[INFO] replace_figure %s slide_no=%d", req.Filename, req.SlideNo)
	warnings, err := s.eng.ReplaceFigure(req.Filename, sel, opts)
	if err != nil {
		s.fail(w, "replace_figure", err)
		return
	}
	s.warn("replace_figure", warnings)
	s.ok(w)
}

// intentFromBBox interprets the wire bbox: absent means auto placement, a
// string names a preset, and a 4-array is a rectangle. Bare 4-arrays stay
// untagged so the normalized-vs-absolute heuristic applies.
func intentFromBBox(raw json.RawMessage) (engine.Intent, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return engine.Auto(), nil
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if !preset.IsValid(name) {
			return engine.Intent{}, fmt.Errorf("%w: %q", preset.ErrInvalidPreset, name)
		}
		return engine.AtPreset(name), nil
	}
	var arr [4]float64
	if err := json.Unmarshal(raw, &arr); err == nil {
		return engine.At(model.NewRect(arr[0], arr[1], arr[2], arr[3])), nil
	}
	return engine.Intent{}, errors.New("bbox must be a preset name or a [x, y, width, height] array")
}

func decodeJSON(r *http.Request, v interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return errors.New("arguments are expected to be in JSON format")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding JSON body: %w", err)
	}
	return nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return n, nil
}

func (s *Server) ok(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "OK")
}

func (s *Server) json(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("[WARN] encoding response: %v", err)
	}
}

func (s *Server) warn(op string, warnings []engine.Warning) {
	for _, warning := range warnings {
		s.log.Printf("[WARN] %s: %s", op, warning.Message)
	}
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	s.log.Printf("[WARN] %s: %v", op, err)
	http.Error(w, err.Error(), statusFor(err))
}

// statusFor maps the error taxonomy to HTTP status codes: validation
// failures are client errors, an unreachable automation service is a 503,
// anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, preset.ErrInvalidPreset),
		errors.Is(err, engine.ErrAmbiguousSelector),
		errors.Is(err, engine.ErrIndexOutOfRange),
		errors.Is(err, strconv.ErrSyntax):
		return http.StatusBadRequest
	case errors.Is(err, automation.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
