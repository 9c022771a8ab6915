package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type E2ETestSuite struct {
	suite.Suite

	httpClient *http.Client
	baseURL    string
}

func (s *E2ETestSuite) SetupSuite() {
	appHost := getEnvOrDefault("APP_HOST", "localhost")
	appPort := getEnvOrDefault("APP_PORT", "8080")
	s.baseURL = fmt.Sprintf("http://%s", net.JoinHostPort(appHost, appPort))

	s.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}

	s.waitForApp()
}

func (s *E2ETestSuite) waitForApp() {
	const maxRetries = 30
	const retryDelay = 2 * time.Second
	healthURL := s.baseURL + "/health"

	for i := range maxRetries {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, healthURL, nil)
		if err != nil {
			s.T().Logf("Failed to create health check request: %v", err)
			time.Sleep(retryDelay)
			continue
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			s.T().Logf("Health check failed (attempt %d/%d): %v", i+1, maxRetries, err)
			time.Sleep(retryDelay)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			s.T().Log("App is healthy")
			return
		}
		s.T().Logf("App health check status %d (attempt %d/%d)", resp.StatusCode, i+1, maxRetries)
		time.Sleep(retryDelay)
	}
	s.T().Fatalf("App did not become healthy after %d attempts", maxRetries)
}

func (s *E2ETestSuite) getJSON(path string, target any) *http.Response {
	req, err := http.NewRequestWithContext(
		context.Background(), http.MethodGet, s.baseURL+path, nil)
	require.NoError(s.T(), err)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	if target != nil {
		require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(target))
	}
	return resp
}

func (s *E2ETestSuite) sendJSON(method, path string, body any) (*http.Response, map[string]any) {
	payload, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		context.Background(), method, s.baseURL+path, bytes.NewReader(payload))
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (s *E2ETestSuite) TestOrderFlow() {
	var lessons []entity.Lesson
	resp := s.getJSON("/lessons", &lessons)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	if len(lessons) == 0 {
		s.T().Skip("no lessons seeded, skipping order flow")
	}

	lesson := lessons[0]
	require.Positive(s.T(), lesson.Space, "seeded lesson has no space left")

	order := map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"phone":     "0123456789",
		"method":    "Home Delivery",
		"address":   "12 High Street",
		"zip":       "10115",
		"lessons": []map[string]any{
			{"id": lesson.ID.Hex(), "quantity": 1},
		},
	}

	resp, body := s.sendJSON(http.MethodPost, "/orders", order)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	require.NotEmpty(s.T(), body["orderId"])

	update := map[string]any{
		"$inc": map[string]any{"space": -1},
	}
	resp, body = s.sendJSON(http.MethodPut, "/lessons/"+lesson.ID.Hex(), update)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	require.Equal(s.T(), "Lesson updated successfully", body["message"])

	var after []entity.Lesson
	resp = s.getJSON("/lessons", &after)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	for _, l := range after {
		if l.ID == lesson.ID {
			require.Equal(s.T(), lesson.Space-1, l.Space)
		}
	}
}

func (s *E2ETestSuite) TestRejectedOrderReturnsError() {
	order := map[string]any{
		"firstName": "Jane",
		"lastName":  "Doe",
		"phone":     "123",
		"method":    "Pickup",
		"lessons": []map[string]any{
			{"id": "65b2f0a4c3e1d20789abcdef", "quantity": 1},
		},
	}

	resp, body := s.sendJSON(http.MethodPost, "/orders", order)
	require.Equal(s.T(), http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(s.T(), body["error"])
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func TestE2ESuite(t *testing.T) {
	if os.Getenv("E2E") == "" {
		t.Skip("E2E not set, skipping end-to-end tests")
	}
	suite.Run(t, new(E2ETestSuite))
}
