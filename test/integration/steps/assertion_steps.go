package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func (tc *testContext) registerAssertionSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the response status code should be (\d+)$`, tc.theResponseStatusCodeShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	sc.Step(`^the response field "([^"]*)" should be null$`, tc.theResponseFieldShouldBeNull)
	sc.Step(`^the response field "([^"]*)" should start with "([^"]*)"$`, tc.theResponseFieldShouldStartWith)
	sc.Step(`^the response should be a list of (\d+) items?$`, tc.theResponseShouldBeAListOf)
	sc.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)
	sc.Step(`^the response body should start with "([^"]*)"$`, tc.theResponseBodyShouldStartWith)
	sc.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, tc.theDBShouldContainObjectsInTable)
	sc.Step(`^the report cache version should be "([^"]*)"$`, tc.theReportCacheVersionShouldBe)
	sc.Step(`^the media directory should contain (\d+) files?$`, tc.theMediaDirectoryShouldContainFiles)
	sc.Step(`^the S3 "([^"]*)" request to "([^"]*)" should carry header "([^"]*)" with "([^"]*)"$`, tc.theS3RequestShouldCarryHeader)
	sc.Step(`^the S3 mock should have received (\d+) "([^"]*)" requests? to "([^"]*)"$`, tc.theS3MockShouldHaveReceived)
}

// responseField walks a dotted path through the decoded body; numeric segments index lists.
func (tc *testContext) responseField(path string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.responseBody, &current); err != nil {
		return nil, fmt.Errorf("response is not JSON: %s", tc.responseBody)
	}

	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, tc.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %s", segment, tc.responseBody)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q of %s", segment, tc.responseBody)
		}
	}
	return current, nil
}

func (tc *testContext) theResponseStatusCodeShouldBe(code int) error {
	if tc.response == nil {
		return fmt.Errorf("no request was sent")
	}
	if tc.response.StatusCode != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, tc.response.StatusCode, tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("field %q is null, expected %q", field, expected)
	}
	if actual := fmt.Sprint(value); actual != tc.expand(expected) {
		return fmt.Errorf("field %q: expected %q, got %q", field, tc.expand(expected), actual)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBeNull(field string) error {
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("field %q: expected null, got %v", field, value)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldStartWith(field, prefix string) error {
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	if actual := fmt.Sprint(value); !strings.HasPrefix(actual, prefix) {
		return fmt.Errorf("field %q: expected prefix %q, got %q", field, prefix, actual)
	}
	return nil
}

func (tc *testContext) theResponseShouldBeAListOf(count int) error {
	var items []any
	if err := json.Unmarshal(tc.responseBody, &items); err != nil {
		return fmt.Errorf("response is not a list: %s", tc.responseBody)
	}
	if len(items) != count {
		return fmt.Errorf("expected %d items, got %d: %s", count, len(items), tc.responseBody)
	}
	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if actual := tc.response.Header.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header %q: expected %q in %q", header, expected, actual)
	}
	return nil
}

func (tc *testContext) theResponseBodyShouldStartWith(prefix string) error {
	if !strings.HasPrefix(string(tc.responseBody), prefix) {
		return fmt.Errorf("body does not start with %q", prefix)
	}
	return nil
}

func (tc *testContext) theDBShouldContainObjectsInTable(count int, table string) error {
	actual, err := tc.db.Count(table)
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d rows in %s, got %d", count, table, actual)
	}
	return nil
}

func (tc *testContext) theReportCacheVersionShouldBe(expected string) error {
	actual, err := tc.redis.Get(context.Background(), testKeyPrefix+"report:version").Result()
	if err != nil {
		return fmt.Errorf("failed to read cache version: %w", err)
	}
	if actual != expected {
		return fmt.Errorf("expected cache version %s, got %s", expected, actual)
	}
	return nil
}

func (tc *testContext) theMediaDirectoryShouldContainFiles(count int) error {
	files := 0
	err := filepath.WalkDir(tc.mediaRoot, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk media root: %w", err)
	}
	if files != count {
		return fmt.Errorf("expected %d media files, got %d", count, files)
	}
	return nil
}

func (tc *testContext) theS3MockShouldHaveReceived(count int, method, path string) error {
	if tc.s3 == nil {
		return fmt.Errorf("S3 storage is not enabled for this scenario")
	}
	if actual := tc.s3.CountRequests(method, path); actual != count {
		return fmt.Errorf("expected %d %s %s requests, got %d", count, method, path, actual)
	}
	return nil
}

func (tc *testContext) theS3RequestShouldCarryHeader(method, path, header, expected string) error {
	if tc.s3 == nil {
		return fmt.Errorf("S3 storage is not enabled for this scenario")
	}
	headers := tc.s3.GetRequestHeaders(method, path, 0)
	if headers == nil {
		return fmt.Errorf("no %s %s request was received", method, path)
	}
	if actual := headers[header]; actual != expected {
		return fmt.Errorf("header %q: expected %q, got %q", header, expected, actual)
	}
	return nil
}
