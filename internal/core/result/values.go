package result

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/dingolabs/dingo/internal/observability"
	"github.com/dingolabs/dingo/internal/output"
)

// decodeLenient copies matching keys of input into out. Fields whose values
// have an unexpected shape keep their zero value.
func decodeLenient(input map[string]any, out any) {
	if len(input) == 0 {
		return
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	if err := dec.Decode(input); err != nil && observability.CLILogger != nil {
		observability.CLILogger.Debug("Response field has unexpected shape", zap.Error(err))
	}
}

// truthy reports whether a decoded JSON value counts as present: null,
// false, zero and the empty string do not.
func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case float64:
		return typed != 0 && !math.IsNaN(typed)
	case int:
		return typed != 0
	case string:
		return typed != ""
	default:
		return true
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberOr(v float64, fallback string) string {
	if v == 0 {
		return fallback
	}
	return number(v)
}

// grouped renders a counter with thousands separators.
func grouped(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return humanize.Comma(int64(v))
	}
	return humanize.Commaf(v)
}

// text renders a value meant to be shown as prose. Strings are verbatim;
// structured values are serialized.
func text(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return number(typed)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return output.IndentJSON(v)
	}
}

// items renders a list value as bullet entries. A scalar becomes one entry.
func items(v any) []string {
	list, ok := v.([]any)
	if !ok {
		if s := strings.TrimSpace(text(v)); s != "" {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, text(item))
	}
	return out
}

// languageName maps a language code to its English display name.
func languageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "English"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "English"
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return "English"
}
