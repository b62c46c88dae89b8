package mapper

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for mapper events.
var (
	SignalFromJSStart       = capitan.NewSignal("mapper.fromjs.start", "FromJS mapping beginning")
	SignalFromJSComplete    = capitan.NewSignal("mapper.fromjs.complete", "FromJS mapping finished")
	SignalToJSStart         = capitan.NewSignal("mapper.tojs.start", "ToJS mapping beginning")
	SignalToJSComplete      = capitan.NewSignal("mapper.tojs.complete", "ToJS mapping finished")
	SignalDecodeComplete    = capitan.NewSignal("mapper.decode.complete", "Decode into model finished")
	SignalEncodeComplete    = capitan.NewSignal("mapper.encode.complete", "Encode from model finished")
	SignalHandlerRegistered = capitan.NewSignal("mapper.handler.registered", "Handler registered")
)

// Keys for typed event data.
var (
	KeyDirection   = capitan.NewStringKey("direction")
	KeyKind        = capitan.NewStringKey("kind")
	KeyHandlerName = capitan.NewStringKey("handler")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDepth       = capitan.NewIntKey("depth")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitFromJSStart emits an event when FromJS begins.
func emitFromJSStart(ctx context.Context, kind Kind) {
	capitan.Emit(ctx, SignalFromJSStart,
		KeyDirection.Field(DirFromJS.String()),
		KeyKind.Field(kind.String()),
	)
}

// emitFromJSComplete emits an event when FromJS finishes.
func emitFromJSComplete(ctx context.Context, kind Kind, duration time.Duration, depth int64, err error) {
	fields := completeFields(DirFromJS, kind, duration, depth)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFromJSComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalFromJSComplete, fields...)
	}
}

// emitToJSStart emits an event when ToJS begins.
func emitToJSStart(ctx context.Context, kind Kind) {
	capitan.Emit(ctx, SignalToJSStart,
		KeyDirection.Field(DirToJS.String()),
		KeyKind.Field(kind.String()),
	)
}

// emitToJSComplete emits an event when ToJS finishes.
func emitToJSComplete(ctx context.Context, kind Kind, duration time.Duration, depth int64, err error) {
	fields := completeFields(DirToJS, kind, duration, depth)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalToJSComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalToJSComplete, fields...)
	}
}

func completeFields(dir Direction, kind Kind, duration time.Duration, depth int64) []capitan.Field {
	return []capitan.Field{
		KeyDirection.Field(dir.String()),
		KeyKind.Field(kind.String()),
		KeyDuration.Field(duration),
		KeyDepth.Field(int(depth)),
	}
}

// emitDecodeComplete emits an event when Decode finishes.
func emitDecodeComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := codecFields(contentType, size, duration)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}

// emitEncodeComplete emits an event when Encode finishes.
func emitEncodeComplete(ctx context.Context, contentType string, size int, duration time.Duration, err error) {
	fields := codecFields(contentType, size, duration)
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}

func codecFields(contentType string, size int, duration time.Duration) []capitan.Field {
	return []capitan.Field{
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
}

// emitHandlerRegistered emits an event when a handler is registered.
func emitHandlerRegistered(ctx context.Context, name HandlerName) {
	capitan.Emit(ctx, SignalHandlerRegistered,
		KeyHandlerName.Field(string(name)),
	)
}
