package actions

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// CreateTaskParams are the decoded parameters of create_task.
type CreateTaskParams struct {
	Content   string `mapstructure:"content"`
	DueString string `mapstructure:"due_string"`
	Priority  int    `mapstructure:"priority"`
}

// ListTasksParams are the decoded parameters of list_tasks.
type ListTasksParams struct {
	Filter string `mapstructure:"filter"`
}

// decodeParams decodes a loose parameter map into out.
// Unknown keys are ignored; type mismatches become ValidationErrors.
func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rejectFractionalInts,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return &domain.ValidationError{Param: fieldFromError(err), Reason: "invalid parameter"}
	}
	return nil
}

// rejectFractionalInts stops weak decoding from truncating 3.9 into 3.
func rejectFractionalInts(from, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	var f float64
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f = reflect.ValueOf(data).Float()
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", data)
	}
	return data, nil
}

// fieldFromError extracts the offending key from a mapstructure error.
func fieldFromError(err error) string {
	if me, ok := err.(*mapstructure.Error); ok && len(me.Errors) > 0 {
		msg := me.Errors[0]
		if i := strings.Index(msg, "'"); i >= 0 {
			if j := strings.Index(msg[i+1:], "'"); j >= 0 {
				return msg[i+1 : i+1+j]
			}
		}
		return msg
	}
	return fmt.Sprint(err)
}
