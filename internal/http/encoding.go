package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/fivetwenty-io/remp-client/pkg/remp"
)

// encodeParams turns request params into a body. Strings and byte slices are
// sent verbatim; an empty result means no body is written.
func encodeParams(params interface{}, encoding remp.Encoding) ([]byte, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(p), nil
	case []byte:
		return p, nil
	}

	if encoding == remp.EncodingForm {
		values, err := formValues(params)
		if err != nil {
			return nil, err
		}

		return []byte(values.Encode()), nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshalling JSON params: %w", err)
	}

	return data, nil
}

// formValues flattens params into url.Values using PHP bracket notation for
// nested objects (a[b]=c) and lists (a[]=1).
func formValues(params interface{}) (url.Values, error) {
	switch p := params.(type) {
	case url.Values:
		return p, nil
	case map[string][]string:
		return url.Values(p), nil
	case map[string]string:
		values := make(url.Values, len(p))
		for key, value := range p {
			values.Set(key, value)
		}

		return values, nil
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshalling form params: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var object map[string]interface{}

	err = decoder.Decode(&object)
	if err != nil {
		return nil, fmt.Errorf("%w: %T does not encode to an object", remp.ErrUnsupportedParams, params)
	}

	values := make(url.Values)
	for _, key := range sortedKeys(object) {
		flatten(values, key, object[key])
	}

	return values, nil
}

func flatten(values url.Values, key string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for _, sub := range sortedKeys(v) {
			flatten(values, key+"["+sub+"]", v[sub])
		}
	case []interface{}:
		for _, item := range v {
			flatten(values, key+"[]", item)
		}
	case nil:
		values.Add(key, "")
	case bool:
		if v {
			values.Add(key, "1")
		} else {
			values.Add(key, "0")
		}
	case json.Number:
		values.Add(key, v.String())
	case string:
		values.Add(key, v)
	case float64:
		values.Add(key, strconv.FormatFloat(v, 'f', -1, 64))
	default:
		values.Add(key, fmt.Sprint(v))
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
