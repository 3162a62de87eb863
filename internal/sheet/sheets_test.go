package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type fakeGoogle struct {
	mu          sync.Mutex
	createTitle string
	values      [][]string
	inputOption string
	shared      []string
	failCreate  bool
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/v4/spreadsheets"):
		if f.failCreate {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":{"code":403,"message":"denied"}}`)
			return
		}
		var req struct {
			Properties struct {
				Title string `json:"title"`
			} `json:"properties"`
		}
		_ = json.Unmarshal(body, &req)
		f.createTitle = req.Properties.Title
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1","spreadsheetUrl":"https://docs.google.com/spreadsheets/d/sheet-1/edit"}`)
	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/v4/spreadsheets/sheet-1/values/"):
		var req struct {
			Values [][]string `json:"values"`
		}
		_ = json.Unmarshal(body, &req)
		f.values = req.Values
		f.inputOption = r.URL.Query().Get("valueInputOption")
		_, _ = io.WriteString(w, `{"spreadsheetId":"sheet-1"}`)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/files/sheet-1/permissions"):
		var req struct {
			EmailAddress string `json:"emailAddress"`
			Role         string `json:"role"`
		}
		_ = json.Unmarshal(body, &req)
		f.shared = append(f.shared, req.EmailAddress+":"+req.Role)
		_, _ = io.WriteString(w, `{"id":"perm-1"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"code":404,"message":"unexpected `+r.Method+` `+r.URL.Path+`"}}`)
	}
}

func newTestSheetsSink(t *testing.T, fake *fakeGoogle, shareWith ...string) *SheetsSink {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s := NewSheetsSink("unused.json", shareWith)
	s.clientOptions = func(context.Context) ([]option.ClientOption, error) {
		return []option.ClientOption{
			option.WithEndpoint(srv.URL + "/"),
			option.WithHTTPClient(srv.Client()),
		}, nil
	}
	return s
}

func TestSheetsSinkCreateAndWrite(t *testing.T) {
	fake := &fakeGoogle{}
	s := newTestSheetsSink(t, fake)

	url, err := s.CreateAndWrite(context.Background(), "Safari_2026-01-01_00-00-00", testRows())
	require.NoError(t, err)
	require.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1/edit", url)
	require.Equal(t, "Safari_2026-01-01_00-00-00", fake.createTitle)
	require.Equal(t, testRows(), fake.values)
	require.Equal(t, "RAW", fake.inputOption)
	require.Empty(t, fake.shared)
}

func TestSheetsSinkShares(t *testing.T) {
	fake := &fakeGoogle{}
	s := newTestSheetsSink(t, fake, "a@example.com", " ", "b@example.com")

	_, err := s.CreateAndWrite(context.Background(), "App_t", testRows())
	require.NoError(t, err)
	require.Equal(t, []string{"a@example.com:writer", "b@example.com:writer"}, fake.shared)
}

func TestSheetsSinkCreateFailure(t *testing.T) {
	fake := &fakeGoogle{failCreate: true}
	s := newTestSheetsSink(t, fake)

	_, err := s.CreateAndWrite(context.Background(), "App_t", testRows())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWriteFailed))
	require.Contains(t, err.Error(), "create spreadsheet")
	require.Nil(t, fake.values)
}

func TestSheetsSinkMissingCredentials(t *testing.T) {
	s := NewSheetsSink(filepath.Join(t.TempDir(), "credentials.json"), nil)
	require.Equal(t, filepath.Base(s.CredentialsPath()), "credentials.json")

	_, err := s.CreateAndWrite(context.Background(), "App_t", testRows())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWriteFailed))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSheetsSinkInvalidCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewSheetsSink(path, nil).CreateAndWrite(context.Background(), "App_t", testRows())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrWriteFailed))
	require.Contains(t, err.Error(), "credentials")
}
