package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidID = errors.New("invalid post id")

// Text is a string field that accepts any JSON scalar.
// null, false, 0 and "" all decode to the empty string; other numbers and
// booleans decode to their textual form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case bool:
		if x {
			*t = "true"
		} else {
			*t = ""
		}
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return err
		}
		if f == 0 {
			*t = ""
		} else {
			*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
		}
	default:
		return fmt.Errorf("cannot use %s as text", data)
	}
	return nil
}

// PostID accepts a JSON integer or a string holding one.
type PostID int64

func (id *PostID) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}

	var raw string
	switch x := v.(type) {
	case json.Number:
		raw = x.String()
	case string:
		raw = strings.TrimSpace(x)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*id = PostID(n)
		return nil
	}

	// 3.0 is still a valid id
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*id = PostID(int64(f))
	return nil
}
