package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const facultyHTML = `<!DOCTYPE html>
<html>
<head><title>Prof. Ada Lovelace</title><style>body { color: red; }</style></head>
<body>
<nav>Home | People | Research</nav>
<main>
<h1>Prof. Ada Lovelace</h1>
<p>Research on analytical engines   and   symbolic computation.</p>
</main>
<footer>University of Example</footer>
<script>console.log("tracking");</script>
</body>
</html>`

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(facultyHTML))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Contains(t, result.HTML, "Ada Lovelace")
}

func TestURL_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not a url", nil)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestURL_SetsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestExtractMainText_UsesContentSelector(t *testing.T) {
	text, err := ExtractMainText(facultyHTML, FacultyPageSelectors())
	require.NoError(t, err)

	assert.Contains(t, text, "Prof. Ada Lovelace")
	assert.Contains(t, text, "Research on analytical engines and symbolic computation.")
	assert.NotContains(t, text, "Home | People")
	assert.NotContains(t, text, "tracking")
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	html := `<html><body><p>plain page</p></body></html>`
	text, err := ExtractMainText(html, FacultyPageSelectors())
	require.NoError(t, err)
	assert.Equal(t, "plain page", text)
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("short"))
	assert.True(t, ShouldUseBrowser("   "))

	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
