// Package client talks to a slidefig relay server from Go code. It covers
// every relay route with a typed wrapper, plus the upload-then-place helpers
// that mirror how figures flow from a plotting session into a slide.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/tsawler/slidefig/engine"
	"github.com/tsawler/slidefig/model"
	"github.com/tsawler/slidefig/raster"
)

// Client is a connection to a relay server.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the relay at baseURL, e.g. "http://127.0.0.1:8877".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient creates a client that uses the given http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, httpc: hc}
}

// URL builds the request URL for a relay method.
func (c *Client) URL(method string, query url.Values) string {
	u := c.baseURL + "/" + method
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get performs a GET request against a relay method and returns the response
// body.
func (c *Client) Get(method string, query url.Values) (string, error) {
	resp, err := c.httpc.Get(c.URL(method, query))
	if err != nil {
		return "", fmt.Errorf("relay %s: %w", method, err)
	}
	return readResponse(method, resp)
}

// PostJSON performs a POST request with a JSON body and returns the response
// body.
func (c *Client) PostJSON(method string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("relay %s: encoding request: %w", method, err)
	}
	resp, err := c.httpc.Post(c.URL(method, nil), "application/json", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("relay %s: %w", method, err)
	}
	return readResponse(method, resp)
}

// UploadPicture sends a local raster file to the relay and returns the
// server-local path it was stored under.
func (c *Client) UploadPicture(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening raster: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("picture", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.httpc.Post(c.URL("upload_picture", nil), mw.FormDataContentType(), &buf)
	if err != nil {
		return "", fmt.Errorf("relay upload_picture: %w", err)
	}
	return readResponse("upload_picture", resp)
}

func readResponse(method string, resp *http.Response) (string, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("relay %s: reading response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("relay %s: HTTP %d: %s", method, resp.StatusCode, bytes.TrimSpace(body))
	}
	return string(body), nil
}

func slideQuery(slideNo int) url.Values {
	q := url.Values{}
	if slideNo != 0 {
		q.Set("slide_no", strconv.Itoa(slideNo))
	}
	return q
}

// TitleToFront brings the slide's title placeholders to the front. Slide
// number 0 targets the active slide.
func (c *Client) TitleToFront(slideNo int) error {
	_, err := c.Get("title_to_front", slideQuery(slideNo))
	return err
}

// SetTitle sets the slide's title text.
func (c *Client) SetTitle(title string, slideNo int) error {
	q := slideQuery(slideNo)
	q.Set("title", title)
	_, err := c.Get("set_title", q)
	return err
}

// SetSubtitle sets the slide's subtitle text.
func (c *Client) SetSubtitle(subtitle string, slideNo int) error {
	q := slideQuery(slideNo)
	q.Set("subtitle", subtitle)
	_, err := c.Get("set_subtitle", q)
	return err
}

// AddSlide inserts a new slide after slideNo (0 means after the active
// slide), laid out like slide layoutAs, and returns the new slide's number.
func (c *Client) AddSlide(slideNo, layoutAs int, makeActive bool) (int, error) {
	q := slideQuery(slideNo)
	if layoutAs != 0 {
		q.Set("layout_as", strconv.Itoa(layoutAs))
	}
	active := 0
	if makeActive {
		active = 1
	}
	q.Set("make_active", strconv.Itoa(active))
	body, err := c.Get("add_slide", q)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(body))
	if err != nil {
		return 0, fmt.Errorf("relay add_slide: unexpected response %q", body)
	}
	return n, nil
}

// GotoSlide changes the active slide.
func (c *Client) GotoSlide(slideNo int) error {
	_, err := c.Get("goto_slide", slideQuery(slideNo))
	return err
}

// ShapePositions returns the geometry of every shape on the slide.
func (c *Client) ShapePositions(slideNo int) ([]engine.ShapePosition, error) {
	body, err := c.Get("get_shape_positions", slideQuery(slideNo))
	if err != nil {
		return nil, err
	}
	var out []engine.ShapePosition
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("relay get_shape_positions: decoding response: %w", err)
	}
	return out, nil
}

// ImagePositions returns the geometry of every picture on the slide.
func (c *Client) ImagePositions(slideNo int) ([]model.Rect, error) {
	body, err := c.Get("get_image_positions", slideQuery(slideNo))
	if err != nil {
		return nil, err
	}
	var arrs [][4]float64
	if err := json.Unmarshal([]byte(body), &arrs); err != nil {
		return nil, fmt.Errorf("relay get_image_positions: decoding response: %w", err)
	}
	out := make([]model.Rect, len(arrs))
	for i, a := range arrs {
		out[i] = model.Abs(a[0], a[1], a[2], a[3])
	}
	return out, nil
}

// SlideDimensions returns the presentation's slide width and height.
func (c *Client) SlideDimensions() (float64, float64, error) {
	body, err := c.Get("get_slide_dimensions", nil)
	if err != nil {
		return 0, 0, err
	}
	var dims [2]float64
	if err := json.Unmarshal([]byte(body), &dims); err != nil {
		return 0, 0, fmt.Errorf("relay get_slide_dimensions: decoding response: %w", err)
	}
	return dims[0], dims[1], nil
}

// Notes returns the speaker notes of every slide.
func (c *Client) Notes() ([]string, error) {
	body, err := c.Get("get_notes", nil)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("relay get_notes: decoding response: %w", err)
	}
	return out, nil
}

// AddFigureArgs is the add_figure request. BBox may be nil for automatic
// placement, a preset name string, or a [4]float64 rectangle. Booleans that
// default to true are pointers so an explicit false survives omitempty.
type AddFigureArgs struct {
	Filename           string      `json:"filename,omitempty"`
	BBox               interface{} `json:"bbox,omitempty"`
	SlideNo            int         `json:"slide_no,omitempty"`
	KeepAspect         *bool       `json:"keep_aspect,omitempty"`
	Replace            bool        `json:"replace,omitempty"`
	DeletePlaceholders *bool       `json:"delete_placeholders,omitempty"`
	TargetZOrder       int         `json:"target_z_order,omitempty"`
	W                  float64     `json:"w,omitempty"`
	H                  float64     `json:"h,omitempty"`
}

// ReplaceFigureArgs is the replace_figure request.
type ReplaceFigureArgs struct {
	Filename   string  `json:"filename,omitempty"`
	PicNo      int     `json:"pic_no,omitempty"`
	LeftNo     int     `json:"left_no,omitempty"`
	TopNo      int     `json:"top_no,omitempty"`
	ZOrderNo   int     `json:"zorder_no,omitempty"`
	SlideNo    int     `json:"slide_no,omitempty"`
	KeepAspect *bool   `json:"keep_aspect,omitempty"`
	KeepZOrder *bool   `json:"keep_zorder,omitempty"`
	W          float64 `json:"w,omitempty"`
	H          float64 `json:"h,omitempty"`
}

// AddFigure uploads the local raster at path and places it. Pixel dimensions
// are probed from the file when args leaves them zero.
func (c *Client) AddFigure(path string, args AddFigureArgs) error {
	if args.W == 0 || args.H == 0 {
		w, h, err := raster.PixelSize(path)
		if err != nil {
			return err
		}
		args.W, args.H = w, h
	}
	remote, err := c.UploadPicture(path)
	if err != nil {
		return err
	}
	args.Filename = remote
	_, err = c.PostJSON("add_figure", args)
	return err
}

// ReplaceFigure uploads the local raster at path and swaps it in for an
// existing picture.
func (c *Client) ReplaceFigure(path string, args ReplaceFigureArgs) error {
	if args.W == 0 || args.H == 0 {
		w, h, err := raster.PixelSize(path)
		if err != nil {
			return err
		}
		args.W, args.H = w, h
	}
	remote, err := c.UploadPicture(path)
	if err != nil {
		return err
	}
	args.Filename = remote
	_, err = c.PostJSON("replace_figure", args)
	return err
}

// Bool returns a pointer to b, for the optional boolean fields of the
// request structs.
func Bool(b bool) *bool {
	return &b
}
