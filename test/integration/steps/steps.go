//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/integration/persistence/model"
)

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current date is "([^"]*)"$`, theCurrentDateIs)
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

// registerSeedSteps registers database seeding steps.
func registerSeedSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a business "([^"]*)" owned by me exists$`, aBusinessOwnedByMeExists)
	ctx.Step(`^the business "([^"]*)" has a "([^"]*)" quote of (\d+) issued on "([^"]*)"$`, theBusinessHasAQuote)
	ctx.Step(`^the business "([^"]*)" has an invoice of (\d+) dated "([^"]*)"$`, theBusinessHasAnInvoice)
	ctx.Step(`^a project "([^"]*)" under business "([^"]*)" exists$`, aProjectUnderBusinessExists)
	ctx.Step(`^the project "([^"]*)" has a task "([^"]*)" with (\d+) estimated and (\d+) actual hours$`, theProjectHasATask)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

func theCurrentDateIs(ctx context.Context, dateStr string) error {
	tc := GetTestContext(ctx)
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return err
	}
	tc.clock.SetCurrentTime(date)
	return nil
}

func iAmRegisteredAs(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"name":     "Integration Tester",
		"password": password,
	})
	resp, err := http.Post(tc.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("registration failed with status %d: %s", resp.StatusCode, data)
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}

	tc.accessToken = payload.AccessToken
	tc.refreshToken = payload.RefreshToken
	tc.userID = payload.User.ID
	return nil
}

// expandPath substitutes {business:Name} and {project:Name} placeholders with
// the IDs of seeded records.
func (tc *TestContext) expandPath(path string) string {
	for name, id := range tc.businessIDs {
		path = strings.ReplaceAll(path, "{business:"+name+"}", id)
	}
	for name, id := range tc.projectIDs {
		path = strings.ReplaceAll(path, "{project:"+name+"}", id)
	}
	return path
}

func (tc *TestContext) doRequest(method, path string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.expandPath(path), body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func iSendARequestTo(ctx context.Context, method, path string) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(method, path, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, path string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	return tc.doRequest(method, path, strings.NewReader(body.Content))
}

func aBusinessOwnedByMeExists(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)

	ownerID, err := uuid.Parse(tc.userID)
	if err != nil {
		return fmt.Errorf("no authenticated user to own the business: %w", err)
	}

	business := &model.BusinessModel{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Currency:  "EUR",
		CreatedAt: tc.clock.Now(),
		UpdatedAt: tc.clock.Now(),
	}
	if err := tc.db.DbConn.Create(business).Error; err != nil {
		return err
	}
	tc.businessIDs[name] = business.ID.String()
	return nil
}

func theBusinessHasAQuote(ctx context.Context, businessName, status string, amount int, issuedStr string) error {
	tc := GetTestContext(ctx)

	businessID, err := tc.seededBusinessID(businessName)
	if err != nil {
		return err
	}
	issued, err := time.Parse("2006-01-02", issuedStr)
	if err != nil {
		return err
	}

	return tc.db.DbConn.Create(&model.QuoteModel{
		ID:          uuid.New(),
		BusinessID:  businessID,
		Status:      status,
		TotalAmount: decimal.NewFromInt(int64(amount)),
		IssueDate:   issued,
		CreatedAt:   issued,
		UpdatedAt:   issued.AddDate(0, 0, 2),
	}).Error
}

func theBusinessHasAnInvoice(ctx context.Context, businessName string, amount int, dateStr string) error {
	tc := GetTestContext(ctx)

	businessID, err := tc.seededBusinessID(businessName)
	if err != nil {
		return err
	}
	invoiceDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return err
	}

	return tc.db.DbConn.Create(&model.InvoiceModel{
		ID:          uuid.New(),
		BusinessID:  businessID,
		TotalAmount: decimal.NewFromInt(int64(amount)),
		InvoiceDate: invoiceDate,
		CreatedAt:   invoiceDate,
		UpdatedAt:   invoiceDate,
	}).Error
}

func aProjectUnderBusinessExists(ctx context.Context, projectName, businessName string) error {
	tc := GetTestContext(ctx)

	businessID, err := tc.seededBusinessID(businessName)
	if err != nil {
		return err
	}

	project := &model.ProjectModel{
		ID:         uuid.New(),
		BusinessID: businessID,
		Name:       projectName,
		Status:     "active",
		CreatedAt:  tc.clock.Now(),
		UpdatedAt:  tc.clock.Now(),
	}
	if err := tc.db.DbConn.Create(project).Error; err != nil {
		return err
	}
	tc.projectIDs[projectName] = project.ID.String()
	return nil
}

func theProjectHasATask(ctx context.Context, projectName, title string, estimated, actual int) error {
	tc := GetTestContext(ctx)

	projectIDStr, ok := tc.projectIDs[projectName]
	if !ok {
		return fmt.Errorf("project %q was not seeded", projectName)
	}
	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return err
	}

	est := decimal.NewFromInt(int64(estimated))
	act := decimal.NewFromInt(int64(actual))
	return tc.db.DbConn.Create(&model.ProjectTaskModel{
		ID:             uuid.New(),
		ProjectID:      projectID,
		Title:          title,
		Status:         "in_progress",
		EstimatedHours: &est,
		ActualHours:    &act,
		CreatedAt:      tc.clock.Now(),
		UpdatedAt:      tc.clock.Now(),
	}).Error
}

func (tc *TestContext) seededBusinessID(name string) (uuid.UUID, error) {
	idStr, ok := tc.businessIDs[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("business %q was not seeded", name)
	}
	return uuid.Parse(idStr)
}

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc.response == nil {
		return fmt.Errorf("no response recorded")
	}
	if tc.response.StatusCode != expected {
		return fmt.Errorf("expected status %d, got %d: %s", expected, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, substring string) error {
	tc := GetTestContext(ctx)
	if !strings.Contains(string(tc.responseBody), substring) {
		return fmt.Errorf("response does not contain %q: %s", substring, tc.responseBody)
	}
	return nil
}

// lookupField navigates a dot-separated path through the decoded JSON body.
func (tc *TestContext) lookupField(path string) (any, error) {
	var decoded any
	if err := json.Unmarshal(tc.responseBody, &decoded); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	current := decoded
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object in path %q", part, path)
		}
		current, ok = obj[part]
		if !ok {
			return nil, fmt.Errorf("field %q not found in path %q", part, path)
		}
	}
	return current, nil
}

func theResponseFieldShouldBe(ctx context.Context, path, expected string) error {
	tc := GetTestContext(ctx)
	value, err := tc.lookupField(path)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if number, ok := value.(float64); ok {
		actual = strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", number), "0"), ".")
	}
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", path, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, path string) error {
	tc := GetTestContext(ctx)
	_, err := tc.lookupField(path)
	return err
}
