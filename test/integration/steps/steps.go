package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/persistence"
)

func registerFixtureSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^a tier "([^"]*)" with a monthly limit of "([^"]*)" and categories:$`, aTierWithCategories)
	ctx.Step(`^an admin "([^"]*)"$`, anAdmin)
	ctx.Step(`^an? "([^"]*)" user "([^"]*)"$`, aUser)
	ctx.Step(`^an? "([^"]*)" user "([^"]*)" on tier "([^"]*)" approved by "([^"]*)"$`, aUserOnTier)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)
	ctx.Step(`^I am not logged in$`, iAmNotLoggedIn)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, iSaveTheResponseFieldAs)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
}

func registerStorageSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, theDBShouldContainObjects)
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table with:$`, theDBShouldContainObjectsWith)
	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^the email provider should have received (\d+) emails?$`, theEmailProviderShouldHaveReceived)
	ctx.Step(`^the email provider should have received an email for "([^"]*)"$`, theEmailProviderShouldHaveReceivedFor)
}

// Fixtures

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(current)
	return nil
}

func aTierWithCategories(ctx context.Context, title, limit string, table *godog.Table) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	total, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid monthly limit %q: %w", limit, err)
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}
	categories := make([]entity.TierCategory, 0, len(rows))
	for _, row := range rows {
		maxAmount, err := decimal.NewFromString(row["max_amount"])
		if err != nil {
			return fmt.Errorf("invalid max_amount %q: %w", row["max_amount"], err)
		}
		categories = append(categories, entity.TierCategory{
			Title:     row["title"],
			MaxAmount: maxAmount,
			Enabled:   row["enabled"] != "false",
		})
	}

	tier := entity.NewTier(title, categories, total)
	if err := persistence.NewTierRepository(tc.db.Conn).Upsert(ctx, tier); err != nil {
		return err
	}
	tc.tiers[title] = tier
	return nil
}

func anAdmin(ctx context.Context, email string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	admin := entity.NewAdmin(email, displayName(email))
	if err := persistence.NewAdminRepository(tc.db.Conn).Create(ctx, admin); err != nil {
		return err
	}
	tc.remember(email, account{id: admin.ID, role: entity.RoleAdmin})
	return nil
}

func aUser(ctx context.Context, role, email string) error {
	return createUser(ctx, entity.Role(role), email, nil, nil)
}

func aUserOnTier(ctx context.Context, role, email, tierTitle, approverEmail string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	tier, ok := tc.tiers[tierTitle]
	if !ok {
		return fmt.Errorf("unknown tier %q", tierTitle)
	}
	approver, ok := tc.accounts[approverEmail]
	if !ok {
		return fmt.Errorf("unknown approver %q", approverEmail)
	}
	principal := entity.UserPrincipal(approver.id)
	if approver.role == entity.RoleAdmin {
		principal = entity.AdminPrincipal(approver.id)
	}
	return createUser(ctx, entity.Role(role), email, &tier.ID, &principal)
}

func createUser(ctx context.Context, role entity.Role, email string, tierID *uuid.UUID, approver *entity.Principal) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	user := entity.NewUser(email, displayName(email), role, tierID, approver)
	if err := persistence.NewUserRepository(tc.db.Conn).Create(ctx, user); err != nil {
		return err
	}
	tc.remember(email, account{id: user.ID, role: role})
	return nil
}

func iAmLoggedInAs(ctx context.Context, email string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	acc, ok := tc.accounts[email]
	if !ok {
		return fmt.Errorf("unknown account %q", email)
	}
	token, err := tc.injector.TokenService.GenerateAccessToken(ctx, acc.id, acc.role)
	if err != nil {
		return err
	}
	tc.token = token
	return nil
}

func iAmNotLoggedIn(ctx context.Context) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	tc.token = ""
	return nil
}

// remember stores the account and exposes its id as a {{placeholder}} named
// after the local part of the email.
func (tc *testContext) remember(email string, acc account) {
	tc.accounts[email] = acc
	tc.saved[strings.SplitN(email, "@", 2)[0]] = acc.id.String()
}

func displayName(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return email
	}
	return strings.ToUpper(local[:1]) + local[1:]
}

// Requests

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	return send(ctx, method, endpoint, "")
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	return send(ctx, method, endpoint, body.Content)
}

func send(ctx context.Context, method, endpoint, body string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(tc.replacePlaceholders(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, tc.server.URL+tc.replacePlaceholders(endpoint), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSaveTheResponseFieldAs(ctx context.Context, field, name string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	tc.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)

func (tc *testContext) replacePlaceholders(input string) string {
	return placeholderPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := tc.saved[name]; ok {
			return value
		}
		return match
	})
}

// Responses

func theResponseStatusShouldBe(ctx context.Context, expected int) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	if tc.status != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, tc.status, tc.responseBody)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	expected = tc.replacePlaceholders(expected)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, tc.responseBody)
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	expected = tc.replacePlaceholders(expected)
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	_, err = tc.responseField(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field %q is not a list", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field %q expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

// responseField walks a dotted path such as "report.expense_ids.0" through the
// JSON response body.
func (tc *testContext) responseField(path string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response: %s", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field %q not found in response: %s", path, tc.responseBody)
		}
	}
	return current, nil
}

// Storage and side effects

func theDBShouldContainObjects(ctx context.Context, expected int, table string) error {
	return assertRowCount(ctx, expected, table, nil)
}

func theDBShouldContainObjectsWith(ctx context.Context, expected int, table string, filter *godog.Table) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	rows, err := tableRows(filter)
	if err != nil {
		return err
	}
	where := map[string]any{}
	for _, row := range rows {
		where[row["column"]] = tc.replacePlaceholders(row["value"])
	}
	return assertRowCount(ctx, expected, table, where)
}

func assertRowCount(ctx context.Context, expected int, table string, where map[string]any) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	count, err := tc.db.Count(table, where)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func theEmailWorkerRuns(ctx context.Context) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	tc.injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func theEmailProviderShouldHaveReceived(ctx context.Context, expected int) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	if got := len(tc.resend.Requests(http.MethodPost, "/emails")); got != expected {
		return fmt.Errorf("expected %d emails, got %d", expected, got)
	}
	return nil
}

func theEmailProviderShouldHaveReceivedFor(ctx context.Context, email string) error {
	tc, err := getTestContext(ctx)
	if err != nil {
		return err
	}
	for _, request := range tc.resend.Requests(http.MethodPost, "/emails") {
		recipients, _ := request.Body["to"].([]any)
		for _, recipient := range recipients {
			if strings.Contains(fmt.Sprintf("%v", recipient), email) {
				return nil
			}
		}
	}
	return fmt.Errorf("no email was sent to %s", email)
}

// tableRows turns a godog table with a header row into column maps.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if table == nil || len(table.Rows) < 1 {
		return nil, fmt.Errorf("table must have a header row")
	}
	header := table.Rows[0].Cells
	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			if i < len(header) {
				values[header[i].Value] = cell.Value
			}
		}
		rows = append(rows, values)
	}
	return rows, nil
}
