package steps

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/cucumber/godog"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

var placeholder = regexp.MustCompile(`\{([a-z_]+)(?::([^}]+))?\}`)

func (tc *testContext) registerRequestSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	sc.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	sc.Step(`^I send a "([^"]*)" form request to "([^"]*)" with fields:$`, tc.iSendAFormRequestToWithFields)
	sc.Step(`^I send a "([^"]*)" multipart request to "([^"]*)" with a "([^"]*)" image and fields:$`, tc.iSendAMultipartRequestWithImage)
	sc.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseFieldAs)
}

// expand replaces {name} with a remembered value and {category:Name} with a seeded category id.
func (tc *testContext) expand(s string) string {
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		parts := placeholder.FindStringSubmatch(match)
		if parts[1] == "category" {
			if id, ok := tc.categoryIDs[parts[2]]; ok {
				return id
			}
			return match
		}
		if value, ok := tc.variables[parts[1]]; ok {
			return value
		}
		return match
	})
}

func (tc *testContext) do(method, path, contentType string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.expand(path), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	tc.response = resp
	return nil
}

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.do(method, path, "", nil)
}

func (tc *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return tc.do(method, path, "application/json", strings.NewReader(tc.expand(body.Content)))
}

// formValues reads a two column table of field and value; a field may repeat.
func (tc *testContext) formValues(table *godog.Table) url.Values {
	values := url.Values{}
	for _, row := range table.Rows {
		if len(row.Cells) < 2 {
			continue
		}
		values.Add(row.Cells[0].Value, tc.expand(row.Cells[1].Value))
	}
	return values
}

func (tc *testContext) iSendAFormRequestToWithFields(method, path string, table *godog.Table) error {
	values := tc.formValues(table)
	return tc.do(method, path, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

func (tc *testContext) iSendAMultipartRequestWithImage(method, path, kind string, table *godog.Table) error {
	var content []byte
	switch kind {
	case "png":
		content = pngHeader
	case "text":
		content = []byte("definitely not an image")
	default:
		return fmt.Errorf("unknown image kind %q", kind)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, values := range tc.formValues(table) {
		for _, value := range values {
			if err := writer.WriteField(field, value); err != nil {
				return err
			}
		}
	}
	part, err := writer.CreateFormFile("product_image", "product."+kind)
	if err != nil {
		return err
	}
	if _, err := part.Write(content); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return tc.do(method, path, writer.FormDataContentType(), &buf)
}

func (tc *testContext) iRememberTheResponseFieldAs(field, name string) error {
	value, err := tc.responseField(field)
	if err != nil {
		return err
	}
	tc.variables[name] = fmt.Sprint(value)
	return nil
}
