// Package seed populates the employee store at startup from an external
// people-data source (randomuser.me or anything API-compatible with it).
//
// SEEDING IS BEST-EFFORT BY DESIGN:
// The directory must come up even when the seed source is down or slow. Any
// failure here is logged and swallowed — the process starts with an empty
// store, and every other component is specified to work correctly against
// an empty store.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sakif/employee-directory/internal/model"
	"github.com/sakif/employee-directory/internal/repository"
)

// The fixed classification lists each fetched person is enriched from.
// The upstream source only knows names and contact details; department,
// title, and location are assigned uniformly at random from these.
var (
	departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations"}
	titles      = []string{"Software Engineer", "Senior Developer", "Team Lead", "Manager", "Director", "VP"}
	locations   = []string{"New York", "San Francisco", "London", "Berlin", "Tokyo", "Remote"}
)

// Retry policy for the one-shot fetch. Transient failures (network errors,
// 5xx, 429) get a couple more chances with a short backoff; anything else
// fails immediately.
const (
	maxAttempts = 3
	baseDelay   = 500 * time.Millisecond
)

// Seeder fetches and loads the initial employee records.
type Seeder struct {
	repo   repository.EmployeeRepository
	client *http.Client
	logger *slog.Logger
	url    string
	count  int
}

// New creates a Seeder fetching count people from the given base URL.
func New(repo repository.EmployeeRepository, logger *slog.Logger, baseURL string, count int) *Seeder {
	return &Seeder{
		repo:   repo,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
		url:    baseURL,
		count:  count,
	}
}

// Run fetches, maps, and loads the seed records. It never returns an error:
// bootstrap failure degrades to an empty directory, not a dead process.
func (s *Seeder) Run(ctx context.Context) {
	users, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warn("seed fetch failed, starting with an empty directory",
			slog.String("url", s.url),
			slog.String("error", err.Error()),
		)
		return
	}

	employees := make([]model.Employee, 0, len(users))
	for _, u := range users {
		employees = append(employees, mapUser(u))
	}

	if err := s.repo.Load(ctx, employees); err != nil {
		s.logger.Warn("seed load failed, starting with an empty directory",
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("directory seeded", slog.Int("employees", len(employees)))
}

// randomUserResponse mirrors the randomuser.me payload, keeping only the
// fields the directory uses.
type randomUserResponse struct {
	Results []randomUser `json:"results"`
}

type randomUser struct {
	Login struct {
		UUID string `json:"uuid"`
	} `json:"login"`
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Picture struct {
		Large string `json:"large"`
	} `json:"picture"`
	Dob struct {
		Date string `json:"date"`
	} `json:"dob"`
	Registered struct {
		Date string `json:"date"`
	} `json:"registered"`
}

// fetch GETs the seed endpoint with bounded retries on transient failures.
func (s *Seeder) fetch(ctx context.Context) ([]randomUser, error) {
	reqURL := s.url + "?results=" + strconv.Itoa(s.count) + "&nat=" + url.QueryEscape("us,gb,ca,au")

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			// Linear backoff is plenty for a one-shot startup fetch.
			select {
			case <-time.After(time.Duration(attempt-1) * baseDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		users, retryable, err := s.fetchOnce(ctx, reqURL)
		if err == nil {
			return users, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

// fetchOnce performs a single request. The second return value reports
// whether the failure is worth retrying (network errors and 5xx/429 are;
// malformed payloads and other statuses are not).
func (s *Seeder) fetchOnce(ctx context.Context, reqURL string) ([]randomUser, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		// Context cancellation shouldn't be retried; it won't get better.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	// Read the full body even on error statuses so the connection can be
	// reused by http.Transport.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, err
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("seed source returned status %d", resp.StatusCode)
	}

	var payload randomUserResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false, fmt.Errorf("decoding seed payload: %w", err)
	}

	return payload.Results, false, nil
}

// mapUser turns one fetched person into an Employee, enriching it with a
// random department/title/location, a salary uniform in [50000, 200000),
// and a ~10% chance of being inactive. The upstream uuid becomes the record
// id; the source is assumed internally consistent, so these records skip
// the per-record uniqueness guard (see repository.Load).
func mapUser(u randomUser) model.Employee {
	status := model.StatusActive
	if rand.Float64() < 0.1 {
		status = model.StatusInactive
	}

	return model.Employee{
		ID:          u.Login.UUID,
		FirstName:   u.Name.First,
		LastName:    u.Name.Last,
		Email:       u.Email,
		Phone:       u.Phone,
		Department:  departments[rand.IntN(len(departments))],
		Title:       titles[rand.IntN(len(titles))],
		Location:    locations[rand.IntN(len(locations))],
		Avatar:      u.Picture.Large,
		DateOfBirth: u.Dob.Date,
		HireDate:    u.Registered.Date,
		Salary:      rand.IntN(150000) + 50000,
		Status:      status,
	}
}
