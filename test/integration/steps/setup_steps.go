package steps

import (
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fabrie/backend/internal/domain/entity"
	"github.com/fabrie/backend/internal/integration/persistence/model"
)

func (tc *testContext) registerSetupSteps(sc *godog.ScenarioContext) {
	sc.Step(`^the API server is running$`, tc.theAPIServerIsRunning)
	sc.Step(`^order images are stored in S3$`, tc.orderImagesAreStoredInS3)
	sc.Step(`^S3 rejects uploads with status (\d+)$`, tc.s3RejectsUploadsWithStatus)
	sc.Step(`^S3 accepts uploads again$`, tc.s3AcceptsUploadsAgain)
	sc.Step(`^the current time is "([^"]*)"$`, tc.theCurrentTimeIs)
	sc.Step(`^a category "([^"]*)" of type "([^"]*)" exists$`, tc.aCategoryOfTypeExists)
	sc.Step(`^a transaction of "([^"]*)" in category "([^"]*)" exists on "([^"]*)"$`, tc.aTransactionInCategoryExistsOn)
	sc.Step(`^an order "([^"]*)" for customer "([^"]*)" with status "([^"]*)" exists$`, tc.anOrderForCustomerWithStatusExists)
}

func (tc *testContext) theAPIServerIsRunning() error {
	if tc.server == nil {
		return fmt.Errorf("server not started")
	}
	return nil
}

func (tc *testContext) orderImagesAreStoredInS3() error {
	return tc.startServer(true)
}

// s3UploadPath matches every object key the order images are stored under.
const s3UploadPath = "/" + testBucket + "/products/*"

func (tc *testContext) s3RejectsUploadsWithStatus(status int) error {
	if tc.s3 == nil {
		return fmt.Errorf("S3 storage is not enabled for this scenario")
	}
	tc.s3.SetResponse(-1, "PUT", s3UploadPath, status, map[string]any{"error": "AccessDenied"})
	return nil
}

func (tc *testContext) s3AcceptsUploadsAgain() error {
	if tc.s3 == nil {
		return fmt.Errorf("S3 storage is not enabled for this scenario")
	}
	tc.s3.ClearResponses("PUT", s3UploadPath)
	return nil
}

func (tc *testContext) theCurrentTimeIs(value string) error {
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(now)
	return nil
}

func (tc *testContext) aCategoryOfTypeExists(name, categoryType string) error {
	category := entity.NewCategory(name, entity.CategoryType(categoryType))
	if err := tc.db.DbConn.Create(model.CategoryFromEntity(category)).Error; err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}
	tc.categoryIDs[name] = category.ID.String()
	return nil
}

func (tc *testContext) aTransactionInCategoryExistsOn(amount, categoryName, date string) error {
	id, ok := tc.categoryIDs[categoryName]
	if !ok {
		return fmt.Errorf("category %q was not seeded", categoryName)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	transaction := entity.NewTransaction(uuid.MustParse(id), value, "seeded", day)
	if err := tc.db.DbConn.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
		return fmt.Errorf("failed to seed transaction: %w", err)
	}
	return nil
}

func (tc *testContext) anOrderForCustomerWithStatusExists(code, customer, status string) error {
	order := entity.NewOrder(tc.clock.Now())
	order.ProductID = code
	order.CustomerName = customer
	order.ProductName = "Seeded product"
	order.Status = entity.OrderStatus(status)

	if err := tc.db.DbConn.Create(model.OrderFromEntity(order)).Error; err != nil {
		return fmt.Errorf("failed to seed order: %w", err)
	}
	return nil
}
