package myhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/shoppingcart/lib/myerrors"
	"github.com/MarcGrol/shoppingcart/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	c := context.TODO()
	writer := NewWriter(mylog.New("myhttp"))

	t.Run("Invalid input keeps message", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, 1, myerrors.NewInvalidInputError(fmt.Errorf(`There is no product with id "7".`)))

		assert.Equal(t, 400, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		resp := ErrorResponse{}
		require.NoError(t, json.NewDecoder(response.Body).Decode(&resp))
		assert.Equal(t, ErrorResponse{ErrorCode: 1, Message: `There is no product with id "7".`}, resp)
	})

	t.Run("Internal error is prefixed", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, 2, fmt.Errorf("connection refused"))

		assert.Equal(t, 500, response.Code)
		resp := ErrorResponse{}
		require.NoError(t, json.NewDecoder(response.Body).Decode(&resp))
		assert.Equal(t, "Internal server error: connection refused", resp.Message)
	})

	t.Run("Success", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(c, response, 200, SuccessResponse{Message: "Success"})

		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"message":"Success"}`, response.Body.String())
	})
}
