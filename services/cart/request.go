package cart

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/shoppingcart/lib/myerrors"
)

// Tokens shown for missing or null fields in validation messages
const (
	undefinedToken = "undefined"
	nullToken      = "null"
)

var (
	formDecoder = form.NewDecoder()
	maxAmount   = decimal.NewFromInt(math.MaxInt32)
)

type itemRequest struct {
	ProductUID string
	Amount     int
}

// rawItemRequest holds the fields as received: json tokens or form values
type rawItemRequest struct {
	ID     string `form:"id"`
	Amount string `form:"amount"`

	idIsString     bool
	amountIsNumber bool
}

// parseItemRequest accepts json and form-encoded bodies.
func parseItemRequest(r *http.Request) (itemRequest, error) {
	raw, err := decodeItemRequest(r)
	if err != nil {
		return itemRequest{}, myerrors.NewInvalidInputError(errors.Wrap(err, "error parsing request"))
	}
	return raw.validate()
}

func decodeItemRequest(r *http.Request) (rawItemRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		return decodeForm(r)
	}
	return decodeJSON(r.Body)
}

func decodeForm(r *http.Request) (rawItemRequest, error) {
	err := r.ParseForm()
	if err != nil {
		return rawItemRequest{}, err
	}

	raw := rawItemRequest{}
	err = formDecoder.Decode(&raw, r.PostForm)
	if err != nil {
		return rawItemRequest{}, err
	}
	raw.idIsString = r.PostForm.Has("id")
	if !raw.idIsString {
		raw.ID = undefinedToken
	}
	raw.amountIsNumber = r.PostForm.Has("amount")
	if !raw.amountIsNumber {
		raw.Amount = undefinedToken
	}

	return raw, nil
}

func decodeJSON(body io.Reader) (rawItemRequest, error) {
	fields := map[string]json.RawMessage{}
	err := json.NewDecoder(body).Decode(&fields)
	if err != nil && !errors.Is(err, io.EOF) {
		return rawItemRequest{}, err
	}

	raw := rawItemRequest{}
	raw.ID, raw.idIsString = jsonText(fields, "id")
	var isString bool
	raw.Amount, isString = jsonText(fields, "amount")
	raw.amountIsNumber = !isString && raw.Amount != undefinedToken && raw.Amount != nullToken

	return raw, nil
}

// jsonText returns strings unquoted and any other token verbatim; absent fields render as undefined
func jsonText(fields map[string]json.RawMessage, name string) (string, bool) {
	msg, found := fields[name]
	if !found {
		return undefinedToken, false
	}
	if len(msg) == 0 || string(msg) == nullToken {
		return nullToken, false
	}
	s := ""
	if json.Unmarshal(msg, &s) == nil {
		return s, true
	}
	return string(msg), false
}

func (r rawItemRequest) validate() (itemRequest, error) {
	message := ""

	if !r.idIsString || r.ID == "" {
		message += fmt.Sprintf("Id \"%s\" must be a non-empty string.\n", r.ID)
	}

	amount, amountValid := r.amount()
	if !amountValid {
		message += fmt.Sprintf("Amount \"%s\" must be a positive integer.\n", r.Amount)
	}

	if message != "" {
		return itemRequest{}, myerrors.NewInvalidInputError(errors.New(message))
	}

	return itemRequest{
		ProductUID: r.ID,
		Amount:     amount,
	}, nil
}

func (r rawItemRequest) amount() (int, bool) {
	if !r.amountIsNumber {
		return 0, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return 0, false
	}
	if !amount.IsInteger() || !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return 0, false
	}
	return int(amount.IntPart()), true
}
