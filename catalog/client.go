package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted iMovie backend.
const DefaultBaseURL = "https://i-movie-spring.onrender.com"

const maxErrorBody = 4 << 10

// Client talks to the iMovie REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL. A nil httpClient gets a pooled
// client with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the backend root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Home returns the backend's welcome message.
func (c *Client) Home(ctx context.Context) (string, error) {
	var raw []byte
	if err := c.do(ctx, http.MethodGet, "/home", nil, http.StatusOK, &raw); err != nil {
		return "", err
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return strings.TrimSpace(string(raw)), nil
	}
	return msg, nil
}

func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/movies", nil, http.StatusOK, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (c *Client) Movie(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodGet, "/movies/"+itoa(id), nil, http.StatusOK, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	if err := c.do(ctx, http.MethodGet, "/genres", nil, http.StatusOK, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) GenreMovies(ctx context.Context, genreID int64) (*GenreMovies, error) {
	var gm GenreMovies
	if err := c.do(ctx, http.MethodGet, "/genres/"+itoa(genreID)+"/movies", nil, http.StatusOK, &gm); err != nil {
		return nil, err
	}
	return &gm, nil
}

func (c *Client) ActorMovies(ctx context.Context, actorID int64) ([]Movie, error) {
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/actors/"+itoa(actorID)+"/movies", nil, http.StatusOK, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// AddMovie creates a movie. The backend answers 201 Created.
func (c *Client) AddMovie(ctx context.Context, req MovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodPost, "/movies/admin/add", req, http.StatusCreated, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) UpdateMovie(ctx context.Context, id int64, req MovieRequest) (*Movie, error) {
	var movie Movie
	if err := c.do(ctx, http.MethodPut, "/movies/admin/update/"+itoa(id), req, http.StatusOK, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *Client) DeleteMovie(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/admin/movies/remove/"+itoa(id), nil, 0, nil)
}

// Login exchanges credentials for the user's profile. Bad credentials
// surface as ErrUnauthorized.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthUser, error) {
	var user AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, http.StatusOK, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthUser, error) {
	var user AuthUser
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, 0, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do sends body as JSON and decodes the response into out. A zero want
// accepts any 2xx status. An out of type *[]byte receives the raw body.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if want != 0 {
		ok = resp.StatusCode == want
	}
	if !ok {
		return newAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s %s: %w", method, path, err)
		}
		*raw = data
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(data))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
