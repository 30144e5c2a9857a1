package remp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusOK is the envelope status value that marks a successful call.
const StatusOK = "ok"

// Encoding selects how structured request params are serialized.
type Encoding string

const (
	// EncodingJSON sends params as application/json.
	EncodingJSON Encoding = "json"

	// EncodingForm sends params as application/x-www-form-urlencoded.
	EncodingForm Encoding = "form"
)

// ContentType returns the media type sent in the Content-Type header.
func (e Encoding) ContentType() string {
	if e == EncodingForm {
		return "application/x-www-form-urlencoded"
	}

	return "application/json"
}

// Valid reports whether e names a supported encoding.
func (e Encoding) Valid() bool {
	return e == EncodingJSON || e == EncodingForm
}

// ParseEncoding converts a configuration value into an Encoding.
// The empty string selects EncodingJSON.
func ParseEncoding(value string) (Encoding, error) {
	switch value {
	case "", string(EncodingJSON):
		return EncodingJSON, nil
	case string(EncodingForm), "urlencoded":
		return EncodingForm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, value)
	}
}

// Envelope is the decoded JSON body returned by the CRM API.
//
// Only "status", "access.token" and "error" carry meaning for the client;
// every other field is endpoint specific and left untouched.
type Envelope map[string]interface{}

// Status returns the envelope status or an empty string.
func (e Envelope) Status() string {
	status, _ := e["status"].(string)

	return status
}

// IsSuccess implements the classification rule, see IsSuccess.
func (e Envelope) IsSuccess() bool {
	return IsSuccess(e)
}

// AccessToken returns the non-empty string found at access.token, if any.
func (e Envelope) AccessToken() string {
	access, ok := e["access"].(map[string]interface{})
	if !ok {
		return ""
	}

	token, _ := access["token"].(string)

	return token
}

// ErrorPayload returns the "error" field when it holds a truthy value.
func (e Envelope) ErrorPayload() interface{} {
	value, ok := e["error"]
	if !ok || !truthy(value) {
		return nil
	}

	return value
}

// Decode re-encodes the envelope into a typed value.
func (e Envelope) Decode(into interface{}) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	err = json.Unmarshal(data, into)
	if err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}

	return nil
}

// IsSuccess reports whether the envelope's status is exactly "ok".
// A nil envelope, a missing status or any other value is a failure.
func IsSuccess(env Envelope) bool {
	return env != nil && env.Status() == StatusOK
}

// Rotation is the token and error state carried by one response.
type Rotation struct {
	// Token is the access token embedded in a successful envelope.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// Error is the error payload of an unsuccessful envelope.
	Error interface{} `json:"error,omitempty" yaml:"error,omitempty"`
}

// HasNewToken reports whether the response carried a rotated token.
func (r Rotation) HasNewToken() bool {
	return r.Token != ""
}

// RotationFrom extracts the rotation outcome from an envelope.
func RotationFrom(env Envelope) Rotation {
	if IsSuccess(env) {
		return Rotation{Token: env.AccessToken()}
	}

	if env != nil {
		return Rotation{Error: env.ErrorPayload()}
	}

	return Rotation{}
}

// Result is what a single Get, Post or Send call resolves with.
type Result struct {
	StatusCode int
	Header     http.Header
	Envelope   Envelope
	Rotation   Rotation
}

// IsSuccess classifies the result's envelope.
func (r *Result) IsSuccess() bool {
	return r != nil && IsSuccess(r.Envelope)
}

// Response is the raw transport response seen by interceptors and carried by
// http-failure errors.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// truthy treats nil, false, zero and "" as absent.
func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case json.Number:
		return v != "" && v != "0"
	default:
		return true
	}
}
