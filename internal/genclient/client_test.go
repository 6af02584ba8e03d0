package genclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/langcoach/internal/exercise"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGenerateNormalizesArrayResponse(t *testing.T) {
	var got exercise.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"text": "Yo ___ al cine.", "answers": [{"position": 0, "answer": "fui", "explanation": "pretérito"}], "hints": [{"evidence": 1, "hint": "ir"}]},
			{"text": "Ella ___ ___.", "answers": [{"position": 0, "answer": "es"}, {"position": 1, "answer": "alta"}]}
		]`)
	}))
	defer srv.Close()

	req := exercise.DefaultRequest()
	req.Topic = "cinema"
	c := New(srv.URL, WithLogger(quietLogger()))

	set, err := c.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req, got)
	require.Len(t, set.Exercises, 2)
	assert.Equal(t, 1, set.Exercises[1].ID)
	assert.Len(t, set.Answers, 3)
	assert.Equal(t, 1, set.Answers[2].ExerciseID)
	require.Len(t, set.Hints, 1)
	assert.Equal(t, 0, set.Hints[0].ExerciseID)
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, `{"error":"Invalid difficulty level: Z9"}`)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "<html>oops</html>")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(srv.URL, WithLogger(quietLogger())).Generate(context.Background(), exercise.DefaultRequest())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGenerationFailed))
		})
	}
}

func TestGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithLogger(quietLogger())).Generate(context.Background(), exercise.DefaultRequest())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond), WithLogger(quietLogger()))
	_, err := c.Generate(context.Background(), exercise.DefaultRequest())
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestTimeoutDoesNotTouchCallerClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Hour}

	for _, opts := range [][]Option{
		{WithHTTPClient(hc), WithTimeout(time.Second)},
		{WithTimeout(time.Second), WithHTTPClient(hc)},
	} {
		c := New("", opts...)
		assert.Equal(t, time.Second, c.http.Timeout, "timeout applies whatever the option order")
		assert.NotSame(t, hc, c.http)
	}
	assert.Equal(t, time.Hour, hc.Timeout, "caller's client must stay unchanged")

	c := New("", WithHTTPClient(hc))
	assert.Same(t, hc, c.http, "without WithTimeout the caller's client is used as is")
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, New("").Endpoint())
}
