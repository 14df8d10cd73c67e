// internal/service/product/domain/errors_test.go
package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "There's no product for the given ID.", NewProductNotFoundError().Error())
	assert.Equal(t, "The product 42 is out of stock.", (&OutOfStockError{ProductID: 42}).Error())
	assert.Equal(t, "The sales products must be informed.",
		NewValidationError("The sales products must be informed.").Error())
}

func TestPublishErrorUnwrap(t *testing.T) {
	cause := errors.New("broker unreachable")
	err := &PublishError{Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestProductUpdateStock(t *testing.T) {
	p := &Product{ID: 1, QuantityAvailable: 10}
	p.UpdateStock(4)
	assert.Equal(t, 6, p.QuantityAvailable)
}
