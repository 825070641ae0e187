package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Ping(context.Background()))
}

func TestPingUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	require.Error(t, NewClient(srv.URL).Ping(context.Background()))
}

func TestRenderHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		// 841.89pt wide A4 landscape is 11.6929 inches
		require.Equal(t, "11.6929", r.FormValue("paperWidth"))
		require.Equal(t, "8.2678", r.FormValue("paperHeight"))
		require.Equal(t, "0", r.FormValue("marginTop"))

		f, _, err := r.FormFile("files")
		require.NoError(t, err)
		defer f.Close()

		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	pdf, err := NewClient(srv.URL).RenderHTML(context.Background(), "<html></html>", 841.89, 595.28)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.7", string(pdf))
}

func TestRenderHTMLDefaultPaperSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Empty(t, r.FormValue("paperWidth"), "zero size leaves Gotenberg's default")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RenderHTML(context.Background(), "<html></html>", 0, 0)
	require.NoError(t, err)
}

func TestRenderHTMLFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).RenderHTML(context.Background(), "<html></html>", 100, 100)
	require.ErrorContains(t, err, "status 500")
}
