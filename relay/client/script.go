package client

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"text/template"
)

// Script emits the JavaScript snippets a browser notebook runs to reach a
// relay on the viewer's machine. The notebook kernel may sit on a remote
// server; these snippets execute in the browser, next to the presentation
// host, so the relay can stay bound to loopback.
type Script struct {
	baseURL string
}

// NewScript creates an emitter for the relay at baseURL.
func NewScript(baseURL string) *Script {
	return &Script{baseURL: strings.TrimRight(baseURL, "/")}
}

// Snippet is one emitted call: JS to execute plus an HTML DIV the response
// text lands in.
type Snippet struct {
	// DivID is the id of the result DIV.
	DivID string

	// JS is the script body.
	JS string

	// HTML is the placeholder DIV markup.
	HTML string
}

// InitHTML returns the one-time setup script defining the base64-to-Blob
// helper and the result callback. Emit it once per notebook session before
// any snippet runs.
func (s *Script) InitHTML() string {
	return initScript
}

const initScript = `<script>
function b64toBlob(b64Data, contentType, sliceSize) {
    contentType = contentType || '';
    sliceSize = sliceSize || 512;

    var byteCharacters = atob(b64Data);
    var byteArrays = [];

    for (var offset = 0; offset < byteCharacters.length; offset += sliceSize) {
        var slice = byteCharacters.slice(offset, offset + sliceSize);
        var byteNumbers = new Array(slice.length);
        for (var i = 0; i < slice.length; i++) {
            byteNumbers[i] = slice.charCodeAt(i);
        }
        var byteArray = new Uint8Array(byteNumbers);
        byteArrays.push(byteArray);
    }

    var blob = new Blob(byteArrays, {type: contentType});
    return blob;
};

function getResults(data, div_id) {
    var checkExist = setInterval(function() {
       if ($('#' + div_id).length) {
          document.getElementById(div_id).textContent = data;
          console.log("[slidefig] Server response: " + data);

          clearInterval(checkExist);
       }
    }, 100);
};
</script>
`

var (
	getTemplate = template.Must(template.New("get").Parse(
		`$.get("{{.URL}}", function(data){getResults(data, "{{.DivID}}");});`))

	postTemplate = template.Must(template.New("post").Parse(
		`$.ajax({
    url: "{{.URL}}",
    type: "POST",
    data: '{{.JSON}}',
    contentType: "application/json; charset=utf-8",
    success: function(data){getResults(data, "{{.DivID}}");},
});`))

	uploadTemplate = template.Must(template.New("upload").Parse(
		`var base64ImageContent = "{{.Data}}";
var blob = b64toBlob(base64ImageContent, 'image/png');
var formData = new FormData();
formData.append("picture", blob);

$.ajax({
    url: "{{.URL}}",
    type: "POST",
    cache: false,
    contentType: false,
    processData: false,
    data: formData,
    success: function(data){getResults(data, "{{.DivID}}");},
});`))

	uploadAndPostTemplate = template.Must(template.New("uploadAndPost").Parse(
		`var base64ImageContent = "{{.Data}}";
var blob = b64toBlob(base64ImageContent, 'image/png');
var formData = new FormData();
formData.append("picture", blob);

$.ajax({
    url: "{{.UploadURL}}",
    type: "POST",
    cache: false,
    contentType: false,
    processData: false,
    data: formData,
    success: function(data){
        var new_data = JSON.parse('{{.JSON}}');
        new_data["filename"] = data;

        $.ajax({
            url: "{{.PostURL}}",
            type: "POST",
            data: JSON.stringify(new_data),
            contentType: "application/json; charset=utf-8",
            success: function(data2){getResults(data2, "{{.DivID}}");},
        });
    },
});`))
)

func divID() string {
	var b [4]byte
	rand.Read(b[:])
	return "pptdiv_" + hex.EncodeToString(b[:])
}

func htmlDiv(id string) string {
	return fmt.Sprintf(`<div id="%s" class="slidefig">[slidefig] Waiting for server response...</div>`, id)
}

func (s *Script) methodURL(method string, query url.Values) string {
	u := s.baseURL + "/" + method
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (s *Script) render(t *template.Template, data interface{}, id string) (Snippet, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return Snippet{}, fmt.Errorf("rendering %s script: %w", t.Name(), err)
	}
	return Snippet{DivID: id, JS: b.String(), HTML: htmlDiv(id)}, nil
}

// GetCall emits a GET against a relay method.
func (s *Script) GetCall(method string, query url.Values) (Snippet, error) {
	id := divID()
	return s.render(getTemplate, struct {
		URL, DivID string
	}{s.methodURL(method, query), id}, id)
}

// PostCall emits a JSON POST against a relay method.
func (s *Script) PostCall(method string, args interface{}) (Snippet, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return Snippet{}, fmt.Errorf("encoding %s arguments: %w", method, err)
	}
	id := divID()
	return s.render(postTemplate, struct {
		URL, JSON, DivID string
	}{s.methodURL(method, nil), string(body), id}, id)
}

// UploadCall emits an upload of the local raster file to the relay.
func (s *Script) UploadCall(path string) (Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snippet{}, fmt.Errorf("reading raster: %w", err)
	}
	id := divID()
	return s.render(uploadTemplate, struct {
		Data, URL, DivID string
	}{base64.StdEncoding.EncodeToString(data), s.methodURL("upload_picture", nil), id}, id)
}

// UploadAndPostCall emits an upload of the local raster followed by a JSON
// POST whose "filename" field is set to the server-local path the upload
// returned.
func (s *Script) UploadAndPostCall(method, path string, args interface{}) (Snippet, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return Snippet{}, fmt.Errorf("encoding %s arguments: %w", method, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Snippet{}, fmt.Errorf("reading raster: %w", err)
	}
	id := divID()
	return s.render(uploadAndPostTemplate, struct {
		Data, UploadURL, PostURL, JSON, DivID string
	}{
		base64.StdEncoding.EncodeToString(data),
		s.methodURL("upload_picture", nil),
		s.methodURL(method, nil),
		string(body),
		id,
	}, id)
}
