//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/careerbridge/careerbridge-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://localhost:8080/api"
	password       = "password123"
)

var (
	baseURL string
	dbURL   string

	// Emails are unique per run so reruns do not collide in the identity provider.
	runID        = uuid.NewString()[:8]
	collegeEmail = "e2e_college_" + runID + "@example.com"
	studentEmail = "e2e_student_" + runID + "@example.com"

	collegeToken string
	studentToken string
	collegeID    string
	studentID    string
	courseID     string
	questionID   string
	testID       string
	appID        string
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	dbURL = os.Getenv("DATABASE_URL")

	if dbURL != "" {
		if err := cleanDatabase(); err != nil {
			fmt.Printf("Setup failed: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

// cleanDatabase empties the domain tables of a postgres-backed server.
func cleanDatabase() error {
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer conn.Close(ctx)

	// Order matters due to FK.
	tables := []string{"applications", "test_results", "tests", "questions", "courses", "students", "colleges"}
	for _, table := range tables {
		if _, err := conn.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}
	return nil
}

func TestE2EFlow(t *testing.T) {
	t.Run("RegisterCollege", func(t *testing.T) {
		var body struct {
			Data struct {
				College model.College `json:"college"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/auth/register/college", "", map[string]string{
			"name": "E2E College", "location": "Nairobi", "country": "Kenya",
			"email": collegeEmail, "password": password,
		}, http.StatusCreated, &body)
		collegeID = body.Data.College.ID
		if collegeID == "" {
			t.Fatal("college ID missing")
		}
		collegeToken = login(t, collegeEmail)
	})

	t.Run("RegisterStudent", func(t *testing.T) {
		var body struct {
			Data struct {
				Student model.Student `json:"student"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/auth/register/student", "", map[string]string{
			"name": "E2E Student", "email": studentEmail, "password": password,
		}, http.StatusCreated, &body)
		studentID = body.Data.Student.ID
		studentToken = login(t, studentEmail)
	})

	t.Run("RegisterDuplicateStudent", func(t *testing.T) {
		expect(t, http.MethodPost, "/auth/register/student", "", map[string]string{
			"name": "E2E Student", "email": studentEmail, "password": password,
		}, http.StatusConflict, nil)
	})

	t.Run("AddCourse", func(t *testing.T) {
		var body struct {
			Data struct {
				Course model.Course `json:"course"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/colleges/"+collegeID+"/courses", collegeToken,
			map[string]interface{}{"name": "Software Engineering", "durationMonths": 48},
			http.StatusCreated, &body)
		courseID = body.Data.Course.ID
	})

	t.Run("CreateQuestion", func(t *testing.T) {
		var body struct {
			Data struct {
				Question model.Question `json:"question"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/questions", collegeToken, map[string]interface{}{
			"collegeId":       collegeID,
			"type":            "mcq-single",
			"text":            "What is 2+2?",
			"difficultyLevel": "easy",
			"options": []map[string]interface{}{
				{"id": "a", "text": "3"},
				{"id": "b", "text": "4", "isCorrect": true},
			},
		}, http.StatusCreated, &body)
		questionID = body.Data.Question.ID
	})

	t.Run("CreateAndPublishTest", func(t *testing.T) {
		var body struct {
			Data struct {
				Test model.Test `json:"test"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/tests", collegeToken, map[string]interface{}{
			"collegeId": collegeID, "title": "E2E Aptitude", "questionIds": []string{questionID},
		}, http.StatusCreated, &body)
		testID = body.Data.Test.ID

		expect(t, http.MethodPost, "/tests/"+testID+"/publish", collegeToken, nil, http.StatusOK, &body)
		if body.Data.Test.Status != model.TestStatusPublished {
			t.Fatalf("test status %q", body.Data.Test.Status)
		}
	})

	t.Run("VerifyPermissionFails", func(t *testing.T) {
		expect(t, http.MethodPost, "/tests", studentToken, map[string]string{}, http.StatusForbidden, nil)
	})

	t.Run("SubmitTest", func(t *testing.T) {
		var body struct {
			Data struct {
				Result model.TestResult `json:"result"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/tests/"+testID+"/submit", studentToken, map[string]interface{}{
			"answers": []map[string]interface{}{{"questionId": questionID, "selected": []string{"b"}}},
		}, http.StatusCreated, &body)
		if body.Data.Result.Score != 1 {
			t.Errorf("score %v, want 1", body.Data.Result.Score)
		}
	})

	t.Run("ApplyAndDecide", func(t *testing.T) {
		var body struct {
			Data struct {
				Application model.Application `json:"application"`
			} `json:"data"`
		}
		expect(t, http.MethodPost, "/students/"+studentID+"/applications", studentToken,
			map[string]string{"courseId": courseID}, http.StatusCreated, &body)
		appID = body.Data.Application.ID

		expect(t, http.MethodPost, "/applications/"+appID+"/decision", collegeToken,
			map[string]string{"decision": "approved"}, http.StatusOK, &body)
		if body.Data.Application.Status != model.ApplicationApproved {
			t.Fatalf("application status %q", body.Data.Application.Status)
		}
	})

	t.Run("GetTestResults", func(t *testing.T) {
		var body struct {
			Data struct {
				Results []model.TestResult `json:"results"`
			} `json:"data"`
		}
		expect(t, http.MethodGet, "/tests/"+testID+"/results", collegeToken, nil, http.StatusOK, &body)

		found := false
		for _, r := range body.Data.Results {
			if r.StudentID == studentID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("student %s not found in test results", studentID)
		}
	})

	t.Run("Logout", func(t *testing.T) {
		expect(t, http.MethodPost, "/auth/logout", studentToken, nil, http.StatusNoContent, nil)
		expect(t, http.MethodGet, "/auth/verify", studentToken, nil, http.StatusUnauthorized, nil)
	})
}

// Helpers

func login(t *testing.T, email string) string {
	t.Helper()
	var body struct {
		Data model.Session `json:"data"`
	}
	expect(t, http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password}, http.StatusOK, &body)
	if body.Data.AccessToken == "" {
		t.Fatal("token missing")
	}
	return body.Data.AccessToken
}

// expect performs a request and fails the test unless it returns want.
// The body is decoded into out when out is non-nil.
func expect(t *testing.T, method, path, token string, body interface{}, want int, out interface{}) {
	t.Helper()
	resp, err := do(method, path, body, token)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d: %s", method, path, resp.StatusCode, want, readBody(resp))
	}
	if out != nil {
		decodeJSON(t, resp, out)
	}
}

func do(method, path string, body interface{}, token string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}
