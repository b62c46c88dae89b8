package mapper

import (
	"strings"
	"unicode"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskEmail  MaskType = "email"  // alice@example.com -> a***@example.com
	MaskCard   MaskType = "card"   // 4111111111111111 -> ************1111
	MaskPhone  MaskType = "phone"  // (555) 123-4567 -> (***) ***-4567
	MaskName   MaskType = "name"   // John Smith -> J*** S****
	MaskRedact MaskType = "redact" // anything -> ***
)

// maskPrefix namespaces the handler names of the masking handlers.
const maskPrefix = "mask."

// redacted replaces every value a MaskRedact handler writes out.
const redacted = "***"

// Masker applies content-aware masking to a string.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// builtinMaskers returns the masker for every MaskType.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskEmail:  MaskerFunc(maskEmail),
		MaskCard:   MaskerFunc(maskCard),
		MaskPhone:  MaskerFunc(maskPhone),
		MaskName:   MaskerFunc(maskName),
		MaskRedact: MaskerFunc(func(string) string { return redacted }),
	}
}

// MaskHandlerName returns the name the masking handler for mt is registered
// under, for use as a `$handler` value.
func MaskHandlerName(mt MaskType) HandlerName {
	return HandlerName(maskPrefix + string(mt))
}

// maskHandler maps like the value handler on the way in and masks strings
// on the way out, so models hold the real data and plain output never does.
type maskHandler struct {
	typ    MaskType
	masker Masker
}

// Masked returns a handler applying the masker of mt on ToJS. For an unknown
// MaskType the handler fails in both directions with ErrUnknownHandler.
func Masked(mt MaskType) Handler {
	m, ok := builtinMaskers()[mt]
	if !ok {
		return unknownMask(mt)
	}
	return maskHandler{typ: mt, masker: m}
}

// unknownMask reports a MaskType with no masker.
type unknownMask MaskType

func (u unknownMask) FromJS(*Context, any, any, Wrap) (any, error) {
	return nil, newHandlerError(MaskHandlerName(MaskType(u)))
}

func (u unknownMask) ToJS(*Context, any) (any, error) {
	return nil, newHandlerError(MaskHandlerName(MaskType(u)))
}

// MaskedWith returns a handler applying m on ToJS.
func MaskedWith(m Masker) Handler {
	return maskHandler{masker: m}
}

func (h maskHandler) FromJS(c *Context, value, target any, wrap Wrap) (any, error) {
	return valueHandler{}.FromJS(c, value, target, wrap)
}

func (h maskHandler) ToJS(_ *Context, value any) (any, error) {
	plain := unwrapAll(value)
	if plain == nil {
		return nil, nil
	}
	if h.typ == MaskRedact {
		return redacted, nil
	}
	s, ok := plain.(string)
	if !ok {
		return plain, nil
	}
	return h.masker.Mask(s), nil
}

// maskHandlers returns a masking handler for every MaskType, keyed by its
// handler name.
func maskHandlers() map[HandlerName]Handler {
	out := make(map[HandlerName]Handler)
	for mt := range builtinMaskers() {
		out[MaskHandlerName(mt)] = Masked(mt)
	}
	return out
}

// maskEmail keeps the first character of the local part and the domain.
func maskEmail(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", len(value))
	}
	return value[:1] + "***" + value[at:]
}

// maskCard keeps the last four digits, preserving space or dash grouping.
func maskCard(value string) string {
	digits := extractDigits(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	last4 := digits[len(digits)-4:]

	sep := ""
	switch {
	case strings.Contains(value, " "):
		sep = " "
	case strings.Contains(value, "-"):
		sep = "-"
	default:
		return strings.Repeat("*", len(digits)-4) + last4
	}

	groups := make([]string, (len(digits)-4+3)/4)
	for i := range groups {
		groups[i] = "****"
	}
	return strings.Join(append(groups, last4), sep)
}

// maskPhone keeps the last four digits.
func maskPhone(value string) string {
	digits := extractDigits(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	last4 := digits[len(digits)-4:]

	switch {
	case strings.HasPrefix(value, "(") && len(digits) >= 10:
		return "(***) ***-" + last4
	case len(digits) >= 10:
		return "***-***-" + last4
	default:
		return "***-" + last4
	}
}

// maskName keeps the first letter of each word.
func maskName(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		runes := []rune(word)
		words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}
	return strings.Join(words, " ")
}

func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
