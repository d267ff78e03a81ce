package order

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/fabrie/backend/internal/application/adapter"
	"github.com/fabrie/backend/internal/domain/entity"
	domainerror "github.com/fabrie/backend/internal/domain/error"
)

// MaxCodeAttempts bounds how many product_ids are tried before giving up.
const MaxCodeAttempts = 10

// CodeGenerator produces candidate product_ids.
type CodeGenerator func() (string, error)

// RandomCode draws a product_id uniformly from the code alphabet.
func RandomCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(entity.OrderCodeAlphabet)))
	code := make([]byte, entity.OrderCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate order code: %w", err)
		}
		code[i] = entity.OrderCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// insertWithFreshCode assigns a candidate product_id and inserts the order, retrying with a new
// candidate whenever the store reports the key as taken.
func insertWithFreshCode(ctx context.Context, repo adapter.OrderRepository, generate CodeGenerator, o *entity.Order) error {
	for attempt := 1; attempt <= MaxCodeAttempts; attempt++ {
		code, err := generate()
		if err != nil {
			return err
		}
		o.ProductID = code

		err = repo.Create(ctx, o)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainerror.ErrOrderCodeTaken) {
			return err
		}
		slog.WarnContext(ctx, "Order code collision, retrying",
			"product_id", code,
			"attempt", attempt,
		)
	}

	o.ProductID = ""
	return domainerror.NewOrderError(
		domainerror.ErrCodeOrderCodeExhausted,
		"could not allocate a unique order code",
		domainerror.ErrOrderCodeExhausted,
	)
}
