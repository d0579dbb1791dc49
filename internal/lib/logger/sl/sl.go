package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op returns a logger tagged with the operation name and the division it belongs to.
func Op(log *slog.Logger, opn, division string) *slog.Logger {
	return log.With(
		slog.String("op", opn),
		slog.String("division", division),
	)
}
