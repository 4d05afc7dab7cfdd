// Package client is a typed client for the coursehub API. Authentication
// state lives in an explicit Session: loaded once from Login/Register (or
// Restore), attached to every request, and cleared on Logout or whenever the
// server answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Course struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	InstructorID string  `json:"instructorId"`
	Seats        int     `json:"seats"`
}

type CatalogEntry struct {
	Course
	Instructor struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"instructor"`
	Enrolled int64 `json:"enrolled"`
}

type Profile struct {
	User            User     `json:"user"`
	EnrolledCourses []Course `json:"enrolledCourses"`
}

// APIError is a non-OK envelope from the server.
type APIError struct {
	Status int
	Code   int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Restore installs a previously persisted session.
func (c *Client) Restore(s Session) { c.session = &s }

func (c *Client) Session() *Session { return c.session }

func (c *Client) Logout() { c.session = nil }

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode == http.StatusUnauthorized {
		// session is dead; drop it so callers re-authenticate
		c.session = nil
	}
	if env.Code != 0 {
		return &APIError{Status: res.StatusCode, Code: env.Code, Msg: env.Msg}
	}
	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

type credentials struct {
	User
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var creds credentials
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"name": name, "email": email, "password": password}, &creds)
	if err != nil {
		return nil, err
	}
	c.session = &Session{Token: creds.Token, User: creds.User}
	return c.session, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var creds credentials
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &creds)
	if err != nil {
		return nil, err
	}
	c.session = &Session{Token: creds.Token, User: creds.User}
	return c.session, nil
}

func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Courses(ctx context.Context) ([]CatalogEntry, error) {
	var out []CatalogEntry
	if err := c.do(ctx, http.MethodGet, "/api/v1/courses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type NewCourse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Seats       int     `json:"seats,omitempty"`
}

func (c *Client) CreateCourse(ctx context.Context, in NewCourse) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPost, "/api/v1/courses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseUpdate uses pointers: nil leaves the field alone, a set pointer
// replaces the stored value, zero values included.
type CourseUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Seats       *int     `json:"seats,omitempty"`
}

func (c *Client) UpdateCourse(ctx context.Context, id string, up CourseUpdate) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPut, "/api/v1/courses/"+id, up, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/courses/"+id, nil, nil)
}

func (c *Client) Enroll(ctx context.Context, courseID string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/courses/"+courseID+"/enroll", nil, nil)
}
