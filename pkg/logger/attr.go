package logger

import "log/slog"

// Error records err under "error". A nil error yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the account identifier under "user_id".
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

func Username(name string) slog.Attr {
	return slog.String("username", name)
}

func Email(addr string) slog.Attr {
	return slog.String("email", addr)
}

func TokenID(jti string) slog.Attr {
	return slog.String("token_id", jti)
}

func IP(addr string) slog.Attr {
	return slog.String("ip", addr)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}
