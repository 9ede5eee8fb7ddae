package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/constraints"

	"github.com/Philanthropists/erroror/pkg/erroror"
)

func Duration[S ~string](s S, t time.Duration) Field {
	return zap.Duration(string(s), t)
}

func Any[S ~string](s S, v any) Field {
	return zap.Any(string(s), v)
}

func Int[S ~string, T constraints.Signed](s S, v T) Field {
	return zap.Int64(string(s), int64(v))
}

func Uint[S ~string, T constraints.Unsigned](s S, v T) Field {
	return zap.Uint64(string(s), uint64(v))
}

func Float[S ~string, T constraints.Float](s S, v T) Field {
	return zap.Float64(string(s), float64(v))
}

func Error(err error) Field {
	return zap.Error(err)
}

func String[U, V ~string](s U, v V) Field {
	return zap.String(string(s), string(v))
}

type code erroror.Code

func (c code) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	ec := erroror.Code(c)
	if cat := ec.Category(); cat != nil {
		enc.AddString("category", cat.Name())
	}
	enc.AddInt("value", ec.Value())
	enc.AddString("message", ec.Message())
	return nil
}

// Code logs an error classification under the "code" key.
func Code(c erroror.Code) Field {
	return zap.Object("code", code(c))
}
