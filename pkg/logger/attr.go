package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Form records a form identifier under the key "form".
func Form(id string) slog.Attr {
	return slog.String("form", id)
}

// Field records a form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Department records a department key under the key "department".
func Department(key string) slog.Attr {
	return slog.String("department", key)
}

// Transition groups a state change under the key "transition".
func Transition(from, to, event string) slog.Attr {
	return slog.Group("transition",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("event", event),
	)
}

// Receipt records a submission receipt id under the key "receipt".
func Receipt(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("receipt", id)
}

// Phone records an already masked phone number under the key "phone".
func Phone(masked string) slog.Attr {
	return slog.String("phone", masked)
}

// Duration records d in milliseconds under the key "duration_ms".
func Duration(d time.Duration) slog.Attr {
	return slog.Int64("duration_ms", d.Milliseconds())
}
