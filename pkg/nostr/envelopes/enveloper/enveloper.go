package enveloper

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every error from decoding a message envelope.
var ErrInvalid = errors.New("invalid")

// I interface for envelopes.
//
// Unmarshal receives the elements after the label, which has already been
// read to pick the envelope type.
type I interface {
	Label() string
	fmt.Stringer
	Bytes() []byte
	json.Marshaler
	Unmarshal(elems []json.RawMessage) (err error)
}

// Invalid builds an error wrapping ErrInvalid.
func Invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...))
}

// Split decodes the outer array of a message and returns its label and the
// remaining raw elements.
func Split(b []byte) (label string, elems []json.RawMessage, err error) {
	var arr []json.RawMessage
	if err = json.Unmarshal(b, &arr); err != nil || arr == nil {
		return "", nil, Invalid("message is not a JSON array")
	}
	if len(arr) == 0 {
		return "", nil, Invalid("empty message")
	}
	if err = json.Unmarshal(arr[0], &label); err != nil {
		return "", nil, Invalid("message label is not a string")
	}
	return label, arr[1:], nil
}

// String decodes one element that must be a JSON string.
func String(raw json.RawMessage, what string) (s string, err error) {
	if err = json.Unmarshal(raw, &s); err != nil || len(raw) == 0 ||
		raw[0] != '"' {
		return "", Invalid("%s is not a string", what)
	}
	return
}

// SubscriptionID decodes a subscription id, which must be a non-empty
// string.
func SubscriptionID(raw json.RawMessage) (id string, err error) {
	if id, err = String(raw, "subscription id"); err != nil {
		return
	}
	if id == "" {
		return "", Invalid("empty subscription id")
	}
	return
}

// Marshal encodes an envelope's array form.
func Marshal(arr []any) (b []byte) {
	var err error
	if b, err = json.Marshal(arr); err != nil {
		// every element is a string, bool, event or filter
		panic(err)
	}
	return
}

// Want checks the element count of a decoded envelope.
func Want(label string, elems []json.RawMessage, min, max int) (err error) {
	if len(elems) < min || (max >= 0 && len(elems) > max) {
		return Invalid("%s message with %d elements", label, len(elems)+1)
	}
	return
}
