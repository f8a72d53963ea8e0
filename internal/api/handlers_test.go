package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"codeberg.org/snonux/gospeltts/internal/pipeline"
	"codeberg.org/snonux/gospeltts/internal/processor"
	"codeberg.org/snonux/gospeltts/internal/recognition"
	"codeberg.org/snonux/gospeltts/internal/source"
	"codeberg.org/snonux/gospeltts/internal/store"
	"codeberg.org/snonux/gospeltts/internal/sweep"
	"codeberg.org/snonux/gospeltts/internal/testutil"
)

type testEnv struct {
	fs     afero.Fs
	router http.Handler
	rec    *testutil.MockRecognizer
	tr     *testutil.MockTranslator
	synth  *testutil.MockSynthesizer
}

func newTestEnv(t *testing.T, fs afero.Fs) *testEnv {
	t.Helper()

	env := &testEnv{
		fs:    fs,
		rec:   &testutil.MockRecognizer{Text: "Jesus wept"},
		tr:    &testutil.MockTranslator{Translations: map[string]string{"John 3:16: For God so loved the world...": "Juan 3:16: Porque de tal manera amó Dios al mundo..."}},
		synth: &testutil.MockSynthesizer{},
	}

	logger := testutil.NopLogger()
	verses := &testutil.MockVerseProvider{Verses: map[string]string{
		"John 3:16": "For God so loved the world...",
	}}
	st := store.New(fs, "temp")
	proc := processor.NewProcessor(
		source.NewResolver(verses, env.rec, 0, logger),
		pipeline.New(env.tr, env.synth, st, 0, logger),
		sweep.New(st, logger),
		processor.Options{Fs: fs},
		logger,
	)
	env.router = NewRouter(proc, verses, logger)
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func postJSON(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Detail
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "{\"status\":\"ok\"}\n", rr.Body.String())
}

func TestOptions_ListsTablesAndSweeps(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.CreateTestFile(t, fs, "temp/stale.mp3", []byte("x"), time.Now().Add(-8*24*time.Hour))
	testutil.CreateTestFile(t, fs, "temp/fresh.mp3", []byte("x"), time.Now().Add(-time.Hour))
	env := newTestEnv(t, fs)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/options", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp OptionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Languages, 14)
	assert.Len(t, resp.Accents, 8)
	assert.Len(t, resp.Presets, 3)
	assert.Equal(t, "John 3:16", resp.Defaults.Preset)
	assert.True(t, resp.Defaults.UseCustomText)
	assert.False(t, resp.Defaults.DisplayOutputText)
	assert.Len(t, resp.DailyVerse.Date, len("2006-01-02"))
	assert.Contains(t, resp.DailyVerse.Text, "Psalm 118:24")
	assert.Equal(t, 1, resp.Swept)

	testutil.AssertFileNotExists(t, fs, "temp/stale.mp3")
	testutil.AssertFileExists(t, fs, "temp/fresh.mp3")
}

func TestVerse(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	tests := []struct {
		name   string
		query  string
		status int
		detail string
	}{
		{"found", "John 3:16", http.StatusOK, ""},
		{"not found", "Psalm 999:99", http.StatusNotFound, "Verse not found. Please enter a valid reference."},
		{"blank", "   ", http.StatusBadRequest, "Please enter a verse reference."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/verse?reference="+url.QueryEscape(tt.query), nil))
			require.Equal(t, tt.status, rr.Code)

			if tt.status != http.StatusOK {
				assert.Equal(t, tt.detail, decodeError(t, rr))
				return
			}
			var resp VerseResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "John 3:16: For God so loved the world...", resp.Formatted)
		})
	}
}

func TestConvert_VerseThenDownload(t *testing.T) {
	fs := afero.NewMemMapFs()
	env := newTestEnv(t, fs)

	rr := env.do(postJSON(t, `{"verse_reference":"John 3:16","source_language":"English","target_language":"Spanish","display_output_text":true}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "John 316 For God s.mp3", resp.FileName)
	assert.Equal(t, "verse", resp.Source)
	assert.True(t, strings.HasPrefix(resp.OutputText, "Juan 3:16"))
	assert.True(t, strings.HasPrefix(resp.ShareURL, "https://api.whatsapp.com/send?text="))
	assert.Equal(t, int64(len(testutil.GenerateAudioData())), resp.Size)

	play := env.do(httptest.NewRequest(http.MethodGet, resp.AudioURL, nil))
	require.Equal(t, http.StatusOK, play.Code)
	assert.Equal(t, "audio/mpeg", play.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="John 316 For God s.mp3"`, play.Header().Get("Content-Disposition"))
	assert.Equal(t, testutil.GenerateAudioData(), play.Body.Bytes())

	dl := env.do(httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, `attachment; filename="John 316 For God s.mp3"`, dl.Header().Get("Content-Disposition"))
}

func TestConvert_OutputTextHidden(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	rr := env.do(postJSON(t, `{"custom_text":"Amen","target_language":"fr"}`))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.OutputText)
	assert.Equal(t, "custom", resp.Source)
	assert.Equal(t, "Amen.mp3", resp.FileName)
}

func TestConvert_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(*testEnv)
		status int
		detail string
	}{
		{
			name:   "empty input",
			body:   `{"custom_text":""}`,
			status: http.StatusBadRequest,
			detail: "Please enter text to convert.",
		},
		{
			name:   "verse not found",
			body:   `{"verse_reference":"Psalm 999:99","custom_text":"ignored"}`,
			status: http.StatusNotFound,
			detail: "Verse not found. Please enter a valid reference.",
		},
		{
			name:   "audio not understood",
			body:   `{"voice":"AAEC"}`,
			setup:  func(e *testEnv) { e.rec.Err = recognition.ErrNotUnderstood },
			status: http.StatusUnprocessableEntity,
			detail: "Sorry, I could not understand the audio.",
		},
		{
			name:   "recognition service down",
			body:   `{"voice":"AAEC"}`,
			setup:  func(e *testEnv) { e.rec.Err = recognition.ErrUnavailable },
			status: http.StatusBadGateway,
			detail: "Sorry, there was an error with the speech recognition service.",
		},
		{
			name:   "translation failure",
			body:   `{"custom_text":"Amen"}`,
			setup:  func(e *testEnv) { e.tr.Err = assert.AnError },
			status: http.StatusBadGateway,
			detail: "Translation failed. Please try again.",
		},
		{
			name:   "synthesis failure",
			body:   `{"custom_text":"Amen"}`,
			setup:  func(e *testEnv) { e.synth.Err = assert.AnError },
			status: http.StatusBadGateway,
			detail: "Speech synthesis failed. Please try again.",
		},
		{
			name:   "text too long",
			body:   `{"custom_text":"` + strings.Repeat("a", 5001) + `"}`,
			status: http.StatusBadRequest,
			detail: "CustomText is too long",
		},
		{
			name:   "malformed json",
			body:   `{"custom_text":`,
			status: http.StatusBadRequest,
			detail: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, afero.NewMemMapFs())
			if tt.setup != nil {
				tt.setup(env)
			}

			rr := env.do(postJSON(t, tt.body))

			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.detail, decodeError(t, rr))
		})
	}
}

func TestConvert_PersistenceFailure(t *testing.T) {
	env := newTestEnv(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))

	rr := env.do(postJSON(t, `{"custom_text":"Amen","display_output_text":true}`))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	detail := decodeError(t, rr)
	assert.True(t, strings.HasPrefix(detail, "Error saving file: "), detail)
	assert.NotContains(t, rr.Body.String(), "output_text")
}

func TestConvert_MessagePack(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	encoded, err := msgpack.Marshal(map[string]interface{}{
		"custom_text":     "Blessed are the meek",
		"target_language": "sw",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/msgpack")
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, env.tr.Calls[0], "(en->sw)")
}

func TestConvert_MultipartVoice(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("use_custom_text", "on"))
	require.NoError(t, mw.WriteField("source_language", "English"))
	part, err := mw.CreateFormFile("voice", "prayer.webm")
	require.NoError(t, err)
	_, err = part.Write([]byte("webm-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "voice", resp.Source)
	assert.Equal(t, "Jesus wept", resp.SourceText)
	assert.Equal(t, []byte("webm-bytes"), env.rec.Audio)
}

func TestConvert_FormPreset(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	form := url.Values{
		"use_custom_text": {"off"},
		"preset":          {"Psalm 23:1"},
		"custom_text":     {"ignored"},
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := env.do(req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "preset", resp.Source)
	assert.Equal(t, "The Lord is my shepherd, I lack nothing.", resp.SourceText)
}

func TestConvert_UnsupportedContentType(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader("hello"))
	req.Header.Set("Content-Type", "text/plain")
	rr := env.do(req)

	require.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestAudio_NotFound(t *testing.T) {
	env := newTestEnv(t, afero.NewMemMapFs())

	rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/audio/missing.mp3", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Audio not found", decodeError(t, rr))
}

func TestAudio_AcceptsNameWithoutExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.CreateTestFile(t, fs, "temp/Amen.mp3", []byte("mp3"), time.Now())
	env := newTestEnv(t, fs)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/audio/Amen", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "mp3", rr.Body.String())
}

func TestConvert_ReservedCharactersInName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fileName string
	}{
		{"comma and semicolon", "Yes, Lord; amen", "Yes, Lord; amen.mp3"},
		{"percent", "100% faithful", "100% faithful.mp3"},
		{"plus and ampersand", "Faith & hope + love", "Faith & hope + love.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, afero.NewMemMapFs())

			rr := env.do(postJSON(t, `{"custom_text":"`+tt.text+`","target_language":"fr"}`))
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp ConvertResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.Equal(t, tt.fileName, resp.FileName)

			play := env.do(httptest.NewRequest(http.MethodGet, resp.AudioURL, nil))
			require.Equal(t, http.StatusOK, play.Code, play.Body.String())
			assert.Equal(t, testutil.GenerateAudioData(), play.Body.Bytes())

			dl := env.do(httptest.NewRequest(http.MethodGet, resp.DownloadURL, nil))
			require.Equal(t, http.StatusOK, dl.Code, dl.Body.String())
			assert.True(t, strings.HasPrefix(dl.Header().Get("Content-Disposition"), "attachment"))
		})
	}
}

func TestAudio_EscapedPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.CreateTestFile(t, fs, "temp/Yes, Lord; amen.mp3", []byte("mp3"), time.Now())
	env := newTestEnv(t, fs)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/v1/audio/Yes%2C%20Lord%3B%20amen.mp3", nil))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "mp3", rr.Body.String())
}
